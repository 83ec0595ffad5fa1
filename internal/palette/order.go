package palette

import "github.com/jmylchreest/chromaset/internal/colour"

// Order sequences colours so that consecutive entries contrast strongly.
//
// It starts from the most saturated colour and repeatedly appends the
// remaining colour with the best score against the last one placed:
// lab + 0.5*hueGap when the hue gap is at least minHueGap, otherwise
// 0.5*lab. minLabDistance is accepted for symmetry with the interpolation
// thresholds but does not take part in scoring.
func Order(colours []colour.Info, minHueGap, minLabDistance float64) []colour.Info {
	if len(colours) <= 1 {
		out := make([]colour.Info, len(colours))
		copy(out, colours)
		return out
	}

	start, bestSat := 0, 0.0
	for i, c := range colours {
		if c.HSV.S > bestSat {
			start, bestSat = i, c.HSV.S
		}
	}

	ordered := make([]colour.Info, 0, len(colours))
	ordered = append(ordered, colours[start])

	remaining := make([]colour.Info, 0, len(colours)-1)
	remaining = append(remaining, colours[:start]...)
	remaining = append(remaining, colours[start+1:]...)

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		bestIdx, bestScore := 0, -1.0

		for i, c := range remaining {
			if score := adjacencyScore(last, c, minHueGap); score > bestScore {
				bestIdx, bestScore = i, score
			}
		}

		ordered = append(ordered, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}

func adjacencyScore(last, next colour.Info, minHueGap float64) float64 {
	hueGap := colour.CircularHueDistance(next.HSV.H, last.HSV.H)
	labDist := colour.LabDistance(last.Lab, next.Lab)
	if hueGap < minHueGap {
		return labDist * 0.5
	}
	return labDist + hueGap*0.5
}
