package palette

import (
	"math"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// Score rates candidate c for the hue slot at target given the colours
// selected so far. It returns the score and the smallest LAB distance from c
// to any selected colour (+Inf when nothing is selected).
//
// A candidate closer than minDistance to a selected colour is rejected with
// a score of -1. Otherwise the score rewards hue proximity to the target,
// mid-range brightness and saturation, and distance headroom; higher is better.
func Score(c colour.Info, target float64, selected []colour.Info, minDistance float64) (float64, float64) {
	hueDist := colour.CircularHueDistance(target, c.HSV.H)

	minLab := math.Inf(1)
	for _, s := range selected {
		minLab = math.Min(minLab, colour.LabDistance(c.Lab, s.Lab))
	}

	if minLab < minDistance {
		return -1, minLab
	}

	var brightnessBonus float64
	if c.HSV.V >= 0.60 && c.HSV.V <= 0.80 {
		brightnessBonus = 5
	} else {
		brightnessBonus = -math.Abs(c.HSV.V-0.70) * 30
	}

	var saturationBonus float64
	if c.HSV.S >= 0.55 && c.HSV.S <= 0.85 {
		saturationBonus = 5
	} else {
		saturationBonus = -math.Abs(c.HSV.S-0.70) * 20
	}

	score := -hueDist + (minLab-minDistance)*0.5 + saturationBonus + brightnessBonus
	return score, minLab
}
