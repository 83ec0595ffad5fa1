// Package palette builds fixed-size, perceptually distinct palettes from a
// set of anchor colours and a candidate pool.
package palette

import "github.com/jmylchreest/chromaset/internal/colour"

// AnchorCount is the number of anchors every palette is built around.
const AnchorCount = 8

// DefaultAnchors is the curated base set. Order matters: earlier anchors win
// hue-slot conflicts and are backfilled first.
var DefaultAnchors = []colour.Hex{
	"#1772B4", // ultramarine
	"#0AA344", // scallion green
	"#F9BD10", // light baked yellow
	"#F97D1C", // tangerine
	"#ED5736", // consort red
	"#D70440", // vermilion
	"#5976BA", // azure grey
	"#8076A3", // wisteria
}

// Sizes lists the palette sizes generated by default.
var Sizes = []int{16, 32, 64, 128}
