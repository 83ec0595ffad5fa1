package palette

import (
	"math"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// LimitToHueFamilies keeps the colours whose hue lies within tolerance
// degrees of the nearest anchor hue, preserving order.
func LimitToHueFamilies(pool, anchors []colour.Info, tolerance float64) []colour.Info {
	out := make([]colour.Info, 0, len(pool))
	for _, c := range pool {
		if nearestAnchorHueDistance(c.HSV.H, anchors) <= tolerance {
			out = append(out, c)
		}
	}
	return out
}

// nearestAnchorHueDistance returns +Inf when there are no anchors.
func nearestAnchorHueDistance(h float64, anchors []colour.Info) float64 {
	best := math.Inf(1)
	for _, a := range anchors {
		best = math.Min(best, colour.CircularHueDistance(h, a.HSV.H))
	}
	return best
}

// NearestAnchor returns the index of the anchor whose hue is closest to h,
// first anchor winning ties, and the distance. It returns -1 for no anchors.
func NearestAnchor(h float64, anchors []colour.Info) (int, float64) {
	idx, best := -1, math.Inf(1)
	for i, a := range anchors {
		if d := colour.CircularHueDistance(h, a.HSV.H); d < best {
			idx, best = i, d
		}
	}
	return idx, best
}
