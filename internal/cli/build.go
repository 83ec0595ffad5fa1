package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaset/internal/catalog"
	"github.com/jmylchreest/chromaset/internal/config"
	"github.com/jmylchreest/chromaset/internal/palette"
	"github.com/jmylchreest/chromaset/internal/render"
	"github.com/jmylchreest/chromaset/internal/store"
)

type buildOptions struct {
	palette paletteFlags
	output  outputFlags
	report  bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build <catalog>",
		Short: "Build the numbered catalog and all palettes from a colour catalog",
		Long: `Build reads a catalog CSV (optionally .gz, .bz2 or .xz compressed), cleans
and numbers it, builds one palette per size around the anchor colours, and
writes the results.

Catalog columns:
  name_ch                 native colour name (required)
  name                    phonetic name (optional)
  r,g,b | rgb | hex       colour value
  category_ch | category  colour family, native or English

Examples:
  # Build with the default outputs
  chromaset build colours.csv

  # Thin the catalog and also write a database and swatches
  chromaset build colours.csv.xz --thin --db out/chromaset.db --swatches out/swatches

  # Only the 16 and 32 colour palettes, with a custom name prefix
  chromaset build colours.csv --sizes 16,32 --set-prefix Demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts, args[0])
		},
	}

	opts.palette.register(cmd.Flags())
	opts.output.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.report, "report", false, "print the hue distribution of every palette")

	return cmd
}

func runBuild(cmd *cobra.Command, root *rootOptions, opts *buildOptions, catalogPath string) error {
	logger := root.logger(cmd)
	ctx := cmd.Context()

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	opts.palette.apply(cmd.Flags(), cfg)
	opts.output.apply(cmd.Flags(), &cfg.Output)
	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	loaded, err := catalog.LoadFile(catalogPath, catalog.LoadOptions{Logger: logger.Named("catalog")})
	if err != nil {
		return err
	}
	logger.Info("loaded catalog", "path", catalogPath, "colours", len(loaded.Records), "skipped", len(loaded.Skipped))

	records, err := catalog.BuildCandidatePool(loaded.Records, catalog.PoolOptions{
		Thin:     cfg.Thin,
		Thinning: cfg.Thinning,
		Logger:   logger.Named("catalog"),
	})
	if err != nil {
		return fmt.Errorf("failed to prepare catalog: %w", err)
	}
	if len(records) == 0 {
		return errors.New("catalog has no usable colours")
	}

	sets, err := palette.BuildSets(ctx, cfg.SetPrefix, cfg.Anchors, catalog.Hexes(records), cfg.Sizes,
		palette.Options{Logger: logger.Named("palette")})
	if err != nil {
		return fmt.Errorf("failed to build palettes: %w", err)
	}

	if err := writeOutputs(ctx, cfg.Output, records, sets, logger); err != nil {
		return err
	}

	reports, err := analyseSets(sets)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, summaryTable(sets, reports).Render())
	if opts.report {
		for i, set := range sets {
			fmt.Fprintln(out)
			writeHueReport(out, set.Name, reports[i])
		}
	}
	return nil
}

// writeOutputs writes every configured artifact.
func writeOutputs(ctx context.Context, out config.Output, records []catalog.Record, sets []palette.Set, logger hclog.Logger) error {
	if out.CSV != "" {
		if err := writeCatalogCSV(out.CSV, records); err != nil {
			return err
		}
		logger.Info("wrote catalog", "path", out.CSV, "colours", len(records))
	}

	if out.JSON != "" {
		data, err := json.MarshalIndent(palette.SetMap(sets), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode palettes: %w", err)
		}
		if err := writeFile(out.JSON, append(data, '\n')); err != nil {
			return err
		}
		logger.Info("wrote palettes", "path", out.JSON, "palettes", len(sets))
	}

	if out.Database != "" {
		db, err := store.Open(ctx, out.Database, store.Options{Logger: logger.Named("store")})
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SaveCatalog(ctx, records); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		if err := db.SavePalettes(ctx, sets); err != nil {
			return fmt.Errorf("failed to save palettes: %w", err)
		}
	}

	if out.SwatchDir != "" {
		for _, set := range sets {
			if len(set.Colours) == 0 {
				continue
			}
			path, err := render.WriteFile(out.SwatchDir, set.Name, set.Colours, render.DefaultOptions())
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", set.Name, err)
			}
			logger.Debug("wrote swatch", "path", path)
		}
		logger.Info("wrote swatches", "dir", out.SwatchDir, "palettes", len(sets))
	}

	return nil
}

func writeCatalogCSV(path string, records []catalog.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 - output path supplied by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	writeErr := catalog.WriteCSV(f, records)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - exported data is not secret
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func analyseSets(sets []palette.Set) ([]palette.Report, error) {
	reports := make([]palette.Report, len(sets))
	for i, set := range sets {
		r, err := palette.Analyse(set.Colours)
		if err != nil {
			return nil, fmt.Errorf("failed to analyse %s: %w", set.Name, err)
		}
		reports[i] = r
	}
	return reports, nil
}

func summaryTable(sets []palette.Set, reports []palette.Report) *Table {
	t := NewTable([]string{"Palette", "Colours", "Hue span", "Spacing min", "Spacing avg", "Target", "Adjacent min", "Adjacent avg", "Status"})
	for i := 1; i <= 7; i++ {
		t.SetAlign(i, AlignRight)
	}
	for i, set := range sets {
		r := reports[i]
		status := "ok"
		if set.Partial {
			status = "partial"
		}
		t.AddRow([]string{
			set.Name,
			fmt.Sprintf("%d/%d", len(set.Colours), set.Size),
			degrees(r.HueSpan),
			degrees(r.SpacingMin),
			degrees(r.SpacingMean),
			degrees(r.TargetSpacing),
			strconv.FormatFloat(r.AdjacentMin, 'f', 1, 64),
			strconv.FormatFloat(r.AdjacentMean, 'f', 1, 64),
			status,
		})
	}
	return t
}

func writeHueReport(w io.Writer, name string, r palette.Report) {
	fmt.Fprintf(w, "%s: hue %s to %s\n", name, degrees(r.HueMin), degrees(r.HueMax))
	t := NewTable([]string{"#", "Hex", "Hue", "Sat", "Val", "Family"})
	for _, i := range []int{0, 2, 3, 4} {
		t.SetAlign(i, AlignRight)
	}
	for i, e := range r.ByHue {
		t.AddRow([]string{
			strconv.Itoa(i + 1),
			string(e.Hex),
			degrees(e.HSV.H),
			strconv.FormatFloat(e.HSV.S, 'f', 2, 64),
			strconv.FormatFloat(e.HSV.V, 'f', 2, 64),
			e.Family,
		})
	}
	fmt.Fprint(w, t.Render())
}

func degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "°"
}
