package catalog

import (
	"fmt"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// ThinOptions are the quality window and spacing used by Thin.
type ThinOptions struct {
	MinLightness float64 `yaml:"min_lightness" json:"min_lightness"`
	MaxLightness float64 `yaml:"max_lightness" json:"max_lightness"`
	MinChroma    float64 `yaml:"min_chroma" json:"min_chroma"`
	MinDistance  float64 `yaml:"min_distance" json:"min_distance"`
}

// DefaultThinOptions returns L in [10, 90], chroma >= 5 and spacing 5.0.
func DefaultThinOptions() ThinOptions {
	return ThinOptions{
		MinLightness: 10,
		MaxLightness: 90,
		MinChroma:    5,
		MinDistance:  5.0,
	}
}

// Thin drops records outside the lightness window or below the chroma
// floor, then keeps a record only if it is at least MinDistance (CIE76) from
// every record already kept. Earlier records win.
func Thin(records []Record, opts ThinOptions) ([]Record, error) {
	type labRecord struct {
		rec Record
		lab colour.Lab
	}

	filtered := make([]labRecord, 0, len(records))
	for _, r := range records {
		info, err := colour.Describe(r.Hex)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.NameNative, err)
		}
		lab := info.Lab
		if lab.L < opts.MinLightness || lab.L > opts.MaxLightness || lab.Chroma() < opts.MinChroma {
			continue
		}
		filtered = append(filtered, labRecord{rec: r, lab: lab})
	}

	kept := make([]labRecord, 0, len(filtered))
	for _, cand := range filtered {
		tooClose := false
		for _, k := range kept {
			if colour.LabDistance(cand.lab, k.lab) < opts.MinDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, cand)
		}
	}

	out := make([]Record, len(kept))
	for i, k := range kept {
		out[i] = k.rec
	}
	return out, nil
}
