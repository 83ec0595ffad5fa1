package palette

import "github.com/jmylchreest/chromaset/internal/colour"

// Orange/brown hues look muddy at moderate saturation, so the strict tier
// demands more saturation inside this band.
const (
	orangeBandLow    = 15.0
	orangeBandHigh   = 45.0
	orangeBandMinSat = 0.75
)

// VibrancyTier is one rung of the filtering ladder: HSV thresholds plus the
// hue-family tolerance used alongside them.
type VibrancyTier struct {
	Name             string
	MinSaturation    float64
	MinValue         float64
	MaxValue         float64
	StrictOrangeBand bool
	HueTolerance     float64
}

// Tiers is the ladder tried in order until one yields enough candidates.
var Tiers = []VibrancyTier{
	{Name: "strict", MinSaturation: 0.6, MinValue: 0.55, MaxValue: 0.8, StrictOrangeBand: true, HueTolerance: 22.5},
	{Name: "relaxed", MinSaturation: 0.55, MinValue: 0.5, MaxValue: 0.85, HueTolerance: 25},
	{Name: "loose", MinSaturation: 0.5, MinValue: 0.5, MaxValue: 0.8, HueTolerance: 30},
}

// Accepts reports whether c passes the tier's HSV thresholds.
func (t VibrancyTier) Accepts(c colour.HSV) bool {
	if c.S < t.MinSaturation || c.V < t.MinValue || c.V > t.MaxValue {
		return false
	}
	if t.StrictOrangeBand && c.H >= orangeBandLow && c.H < orangeBandHigh && c.S < orangeBandMinSat {
		return false
	}
	return true
}

// FilterVibrant returns the colours accepted by tier, preserving order.
func FilterVibrant(pool []colour.Info, tier VibrancyTier) []colour.Info {
	out := make([]colour.Info, 0, len(pool))
	for _, c := range pool {
		if tier.Accepts(c.HSV) {
			out = append(out, c)
		}
	}
	return out
}
