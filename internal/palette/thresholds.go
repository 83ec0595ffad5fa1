package palette

// MinDistanceFor returns the minimum acceptable LAB distance between
// palette members for a palette of the given size.
func MinDistanceFor(size int) float64 {
	switch {
	case size <= 16:
		return 25
	case size <= 32:
		return 20
	case size <= 64:
		return 18
	default:
		return 15
	}
}

// OrderThresholds are the adjacency ordering parameters for a palette size.
type OrderThresholds struct {
	MinHueGap      float64
	MinLabDistance float64
}

// OrderThresholdsFor returns the ordering parameters for a palette size.
func OrderThresholdsFor(size int) OrderThresholds {
	switch {
	case size <= 16:
		return OrderThresholds{MinHueGap: 50, MinLabDistance: 25}
	case size <= 32:
		return OrderThresholds{MinHueGap: 40, MinLabDistance: 20}
	case size <= 64:
		return OrderThresholds{MinHueGap: 35, MinLabDistance: 18}
	default:
		return OrderThresholds{MinHueGap: 30, MinLabDistance: 15}
	}
}

// relaxFactor scales the minimum distance for the second search pass.
const relaxFactor = 0.8
