// Package catalog holds named colour records and the deterministic
// sorting, de-duplication and thinning that turn a raw catalog into a
// candidate pool.
package catalog

import "github.com/jmylchreest/chromaset/internal/colour"

// Category is a colour family label.
type Category string

// Known categories.
const (
	CategoryRed       Category = "red"
	CategoryOrange    Category = "orange"
	CategoryYellow    Category = "yellow"
	CategoryGreen     Category = "green"
	CategoryCyan      Category = "cyan"
	CategoryBlue      Category = "blue"
	CategoryPurple    Category = "purple"
	CategoryGrayBrown Category = "gray_brown"
)

// CategoryOrder is the canonical concatenation order. Categories not listed
// here follow in lexical order.
var CategoryOrder = []Category{
	CategoryBlue,
	CategoryCyan,
	CategoryGreen,
	CategoryYellow,
	CategoryOrange,
	CategoryRed,
	CategoryPurple,
	CategoryGrayBrown,
}

// NativeCategories maps the native category labels used by source sheets.
var NativeCategories = map[string]Category{
	"红":  CategoryRed,
	"橙":  CategoryOrange,
	"黄":  CategoryYellow,
	"绿":  CategoryGreen,
	"青":  CategoryCyan,
	"蓝":  CategoryBlue,
	"紫":  CategoryPurple,
	"灰褐": CategoryGrayBrown,
}

// Record is one named catalog colour.
type Record struct {
	// Num is the 1-based position after final sequencing; 0 until numbered.
	// It is not an identity field.
	Num            int        `json:"num"`
	Hex            colour.Hex `json:"hex"`
	NameNative     string     `json:"name_ch"`
	NamePhonetic   string     `json:"name"`
	Category       Category   `json:"category"`
	CategoryNative string     `json:"category_ch,omitempty"`
}

// Hexes returns the record colours in order.
func Hexes(records []Record) []colour.Hex {
	out := make([]colour.Hex, len(records))
	for i, r := range records {
		out[i] = r.Hex
	}
	return out
}
