// Package colour provides colour-space conversions and perceptual distance
// measures used to score and order palette candidates.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Hex is a colour in canonical uppercase #RRGGBB form.
// Equality and set membership are by string value.
type Hex string

// FormatError reports a string that is not a valid 6-digit hex colour.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hex colour %q: expected #RRGGBB", e.Value)
}

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Tuple returns the colour as "(r, g, b)", the form used in catalog exports.
func (rgb RGB) Tuple() string {
	return fmt.Sprintf("(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical uppercase hex form (e.g. "#1A2B3C").
func (rgb RGB) Hex() Hex {
	return Hex(fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B))
}

// Color converts the RGB value to an opaque color.Color.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#RRGGBB" (the leading # is optional, case-insensitive).
// Anything else fails with a *FormatError naming the offending value.
func ParseHex(s string) (RGB, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return RGB{}, &FormatError{Value: s}
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, &FormatError{Value: s}
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// NormaliseHex validates s and returns its canonical form.
func NormaliseHex(s string) (Hex, error) {
	rgb, err := ParseHex(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// RGB parses the hex value.
func (h Hex) RGB() (RGB, error) {
	return ParseHex(string(h))
}

// String implements fmt.Stringer.
func (h Hex) String() string {
	return string(h)
}
