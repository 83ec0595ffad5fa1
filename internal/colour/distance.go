package colour

import "math"

// LabDistance returns the CIE76 Delta-E between two LAB colours.
func LabDistance(c1, c2 Lab) float64 {
	dl := c1.L - c2.L
	da := c1.A - c2.A
	db := c1.B - c2.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// CircularHueDistance calculates the angular distance between two hues on the
// colour wheel, taking the shorter way round: min(|h1-h2|, 360-|h1-h2|).
func CircularHueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	return math.Min(diff, 360-diff)
}

// HueName returns the coarse hue family used in palette reports.
func HueName(h float64) string {
	switch {
	case h < 30 || h >= 330:
		return "red"
	case h < 60:
		return "orange"
	case h < 90:
		return "yellow"
	case h < 150:
		return "green"
	case h < 210:
		return "cyan"
	case h < 270:
		return "blue"
	default:
		return "purple"
	}
}
