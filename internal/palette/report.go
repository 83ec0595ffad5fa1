package palette

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// Report summarises how a palette covers the hue circle and how strongly
// its neighbours contrast.
type Report struct {
	Size int `json:"size"`

	// Hue coverage, computed over the palette sorted by hue.
	HueMin        float64 `json:"hue_min"`
	HueMax        float64 `json:"hue_max"`
	HueSpan       float64 `json:"hue_span"`
	SpacingMin    float64 `json:"spacing_min"`
	SpacingMax    float64 `json:"spacing_max"`
	SpacingMean   float64 `json:"spacing_mean"`
	TargetSpacing float64 `json:"target_spacing"`

	// LAB distance between consecutive entries in palette order.
	AdjacentMin    float64 `json:"adjacent_min"`
	AdjacentMean   float64 `json:"adjacent_mean"`
	AdjacentStdDev float64 `json:"adjacent_stddev"`

	// ByHue lists the colours sorted by hue with their family names.
	ByHue []HueEntry `json:"by_hue"`
}

// HueEntry describes one palette colour in a report.
type HueEntry struct {
	Hex    colour.Hex `json:"hex"`
	Family string     `json:"family"`
	HSV    colour.HSV `json:"hsv"`
}

// Analyse builds a report for an ordered palette.
func Analyse(hexes []colour.Hex) (Report, error) {
	infos, err := colour.DescribeAll(hexes)
	if err != nil {
		return Report{}, err
	}

	r := Report{Size: len(infos)}
	if len(infos) > 0 {
		r.TargetSpacing = 360.0 / float64(len(infos))
	}

	byHue := make([]colour.Info, len(infos))
	copy(byHue, infos)
	sort.SliceStable(byHue, func(i, j int) bool { return byHue[i].HSV.H < byHue[j].HSV.H })

	r.ByHue = make([]HueEntry, len(byHue))
	hues := make([]float64, len(byHue))
	for i, c := range byHue {
		hues[i] = c.HSV.H
		r.ByHue[i] = HueEntry{Hex: c.Hex, Family: colour.HueName(c.HSV.H), HSV: c.HSV}
	}

	if len(hues) > 1 {
		spacings := make([]float64, len(hues))
		for i := range hues {
			next := hues[(i+1)%len(hues)]
			spacings[i] = math.Mod(next-hues[i]+360, 360)
		}

		r.HueMin = floats.Min(hues)
		r.HueMax = floats.Max(hues)
		r.SpacingMin = floats.Min(spacings)
		r.SpacingMax = floats.Max(spacings)
		r.SpacingMean = stat.Mean(spacings, nil)

		// A gap wider than half the circle means the colours sit on one
		// side of it and the span wraps through 0.
		if r.SpacingMax > 180 {
			r.HueSpan = 360 - r.SpacingMax
		} else {
			r.HueSpan = r.HueMax - r.HueMin
		}

		adjacent := make([]float64, len(infos)-1)
		for i := 1; i < len(infos); i++ {
			adjacent[i-1] = colour.LabDistance(infos[i-1].Lab, infos[i].Lab)
		}
		r.AdjacentMin = floats.Min(adjacent)
		r.AdjacentMean = stat.Mean(adjacent, nil)
		if len(adjacent) > 1 {
			r.AdjacentStdDev = stat.StdDev(adjacent, nil)
		}
	} else if len(hues) == 1 {
		r.HueMin, r.HueMax = hues[0], hues[0]
	}

	return r, nil
}
