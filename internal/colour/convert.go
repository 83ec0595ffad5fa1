package colour

import "math"

// D65 reference white, scaled so that Y = 100.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// labEpsilon is the CIE linear/cube-root switch point, (6/29)^3.
var labEpsilon = math.Pow(6.0/29.0, 3)

// HSV is the hue/saturation/value view of a colour.
// H is in [0, 360), S and V in [0, 1]. H is 0 for achromatic colours.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// XYZ is a CIE 1931 tristimulus value relative to D65 with Y in [0, 100].
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab is a CIE L*a*b* colour. L is roughly [0, 100]; a and b are unbounded.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// HSV converts RGB to HSV.
func (rgb RGB) HSV() HSV {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	out := HSV{V: maxVal}
	if maxVal > 0 {
		out.S = delta / maxVal
	}
	if delta == 0 {
		return out
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	if h >= 360 {
		h -= 360
	}
	out.H = h
	return out
}

// linearise decodes an sRGB-encoded channel value in [0, 1].
func linearise(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// XYZ converts RGB to XYZ using the sRGB primaries and D65 white.
func (rgb RGB) XYZ() XYZ {
	r := linearise(float64(rgb.R) / 255.0)
	g := linearise(float64(rgb.G) / 255.0)
	b := linearise(float64(rgb.B) / 255.0)

	return XYZ{
		X: (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100,
		Y: (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100,
		Z: (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100,
	}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (1.0/3.0)*(29.0/6.0)*(29.0/6.0)*t + 4.0/29.0
}

// Lab converts XYZ to CIE L*a*b* relative to D65.
func (xyz XYZ) Lab() Lab {
	fx := labF(xyz.X / whiteX)
	fy := labF(xyz.Y / whiteY)
	fz := labF(xyz.Z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// Lab converts RGB to CIE L*a*b*.
func (rgb RGB) Lab() Lab {
	return rgb.XYZ().Lab()
}

// Chroma returns sqrt(a² + b²).
func (lab Lab) Chroma() float64 {
	return math.Sqrt(lab.A*lab.A + lab.B*lab.B)
}

// HueAngle returns atan2(b, a) in degrees, normalised to [0, 360).
func (lab Lab) HueAngle() float64 {
	h := math.Atan2(lab.B, lab.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

// Info bundles a colour with its derived views so that hot loops do not
// recompute conversions.
type Info struct {
	Hex Hex `json:"hex"`
	RGB RGB `json:"rgb"`
	HSV HSV `json:"hsv"`
	Lab Lab `json:"lab"`
}

// Describe parses a hex colour and computes its HSV and LAB views.
func Describe(h Hex) (Info, error) {
	rgb, err := h.RGB()
	if err != nil {
		return Info{}, err
	}
	return DescribeRGB(rgb), nil
}

// DescribeRGB computes the derived views of an RGB colour.
func DescribeRGB(rgb RGB) Info {
	return Info{
		Hex: rgb.Hex(),
		RGB: rgb,
		HSV: rgb.HSV(),
		Lab: rgb.Lab(),
	}
}

// DescribeAll describes every colour, preserving order. It stops at the
// first malformed value.
func DescribeAll(hexes []Hex) ([]Info, error) {
	out := make([]Info, len(hexes))
	for i, h := range hexes {
		info, err := Describe(h)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}
	return out, nil
}

// Hexes returns the hex values of infos in order.
func Hexes(infos []Info) []Hex {
	out := make([]Hex, len(infos))
	for i, info := range infos {
		out[i] = info.Hex
	}
	return out
}
