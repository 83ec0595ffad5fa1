package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/config"
)

// paletteFlags override the palette section of the config.
type paletteFlags struct {
	sizes     []int
	setPrefix string
	thin      bool
	anchors   []string
}

func (f *paletteFlags) register(fs *pflag.FlagSet) {
	fs.IntSliceVar(&f.sizes, "sizes", nil, "palette sizes to build (default 16,32,64,128)")
	fs.StringVar(&f.setPrefix, "set-prefix", "", "name prefix for exported palettes (default "+config.DefaultSetPrefix+")")
	fs.BoolVar(&f.thin, "thin", false, "drop catalog colours outside the quality window or too close to another")
	fs.StringSliceVar(&f.anchors, "anchors", nil, "eight comma-separated anchor colours")
}

// apply copies flags the user set onto cfg. Unset flags leave the config
// file and environment values alone.
func (f *paletteFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("sizes") {
		cfg.Sizes = f.sizes
	}
	if fs.Changed("set-prefix") {
		cfg.SetPrefix = f.setPrefix
	}
	if fs.Changed("thin") {
		cfg.Thin = f.thin
	}
	if fs.Changed("anchors") {
		cfg.Anchors = make([]colour.Hex, 0, len(f.anchors))
		for _, a := range f.anchors {
			cfg.Anchors = append(cfg.Anchors, colour.Hex(a))
		}
	}
}

// outputFlags override the output section of the config.
type outputFlags struct {
	csv       string
	json      string
	database  string
	swatchDir string
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.csv, "csv", "", "write the numbered catalog to this CSV file")
	fs.StringVar(&f.json, "json", "", "write the palettes to this JSON file")
	fs.StringVar(&f.database, "db", "", "write catalog and palettes to this SQLite database")
	fs.StringVar(&f.swatchDir, "swatches", "", "write one PNG swatch sheet per palette to this directory")
}

func (f *outputFlags) apply(fs *pflag.FlagSet, out *config.Output) {
	if fs.Changed("csv") {
		out.CSV = f.csv
	}
	if fs.Changed("json") {
		out.JSON = f.json
	}
	if fs.Changed("db") {
		out.Database = f.database
	}
	if fs.Changed("swatches") {
		out.SwatchDir = f.swatchDir
	}
}
