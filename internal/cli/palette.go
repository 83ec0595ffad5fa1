package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaset/internal/catalog"
	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/palette"
)

type paletteOptions struct {
	palette     paletteFlags
	catalogPath string
	size        int
	preview     bool
	format      string
}

func newPaletteCmd(root *rootOptions) *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette [hex...]",
		Short: "Build a single palette from a catalog or a list of colours",
		Long: `Build one palette of the requested size. Candidate colours come from the
hex arguments, a catalog file, or both.

The palette is printed one colour per line. When stdout is a terminal each
line carries a colour preview; use --preview=false to turn it off.

Examples:
  # 16 colours from a catalog
  chromaset palette --catalog colours.csv --size 16

  # From explicit candidates, as JSON
  chromaset palette --size 12 '#E3B4B8' '#F0A1A8' '#61649F' --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, root, opts, args)
		},
	}

	opts.palette.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "catalog CSV to draw candidates from")
	cmd.Flags().IntVarP(&opts.size, "size", "n", 16, "number of colours in the palette")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews (default: on for terminals)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")

	return cmd
}

func runPalette(cmd *cobra.Command, root *rootOptions, opts *paletteOptions, args []string) error {
	logger := root.logger(cmd)

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q: expected text or json", opts.format)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	opts.palette.apply(cmd.Flags(), cfg)
	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var pool []colour.Hex
	for _, a := range args {
		h, err := colour.NormaliseHex(a)
		if err != nil {
			return err
		}
		pool = append(pool, h)
	}

	if opts.catalogPath != "" {
		loaded, err := catalog.LoadFile(opts.catalogPath, catalog.LoadOptions{Logger: logger.Named("catalog")})
		if err != nil {
			return err
		}
		records, err := catalog.BuildCandidatePool(loaded.Records, catalog.PoolOptions{
			Thin:     cfg.Thin,
			Thinning: cfg.Thinning,
			Logger:   logger.Named("catalog"),
		})
		if err != nil {
			return fmt.Errorf("failed to prepare catalog: %w", err)
		}
		pool = append(pool, catalog.Hexes(records)...)
	}

	if len(pool) == 0 {
		return errors.New("no candidate colours: pass hex values or --catalog")
	}

	hexes, err := palette.Build(cfg.Anchors, pool, opts.size, palette.Options{Logger: logger.Named("palette")})
	var partial *palette.PartialPaletteWarning
	switch {
	case errors.As(err, &partial):
		logger.Warn("palette is partial", "size", partial.Size, "achieved", partial.Achieved)
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		set := palette.Set{Name: palette.SetName(cfg.SetPrefix, opts.size), Size: opts.size, Colours: hexes, Partial: partial != nil}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	preview := opts.preview
	if !cmd.Flags().Changed("preview") {
		preview = isTerminal(out)
	}
	return printPalette(out, hexes, preview)
}

func printPalette(w io.Writer, hexes []colour.Hex, preview bool) error {
	for _, h := range hexes {
		if !preview {
			fmt.Fprintln(w, h)
			continue
		}
		info, err := colour.Describe(h)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, colour.FormatColourWithLabel(info.RGB, colour.HueName(info.HSV.H), 4))
	}
	return nil
}

// isTerminal reports whether w is a terminal that accepts colour escapes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}
