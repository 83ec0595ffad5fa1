package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/chromaset/internal/colour"
)

var primaries = []colour.Hex{"#FF0000", "#00FF00", "#0000FF"}

func TestBounds(t *testing.T) {
	opts := Options{Columns: 2, SwatchSize: 10, Padding: 1}

	tests := []struct {
		n    int
		want image.Rectangle
	}{
		{n: 1, want: image.Rect(0, 0, 12, 12)},
		{n: 2, want: image.Rect(0, 0, 23, 12)},
		{n: 3, want: image.Rect(0, 0, 23, 23)},
	}

	for _, tt := range tests {
		if got := opts.Bounds(tt.n); got != tt.want {
			t.Errorf("Bounds(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestSwatchesFillColours(t *testing.T) {
	opts := Options{Columns: 8, SwatchSize: 20, Padding: 2}
	img, err := Swatches(primaries, opts)
	if err != nil {
		t.Fatalf("Swatches() error = %v", err)
	}

	for i, hex := range primaries {
		want, _ := hex.RGB()
		r := opts.SwatchRect(i)
		got := colour.ToRGB(img.At(r.Min.X+1, r.Min.Y+1))
		if got != want {
			t.Errorf("swatch %d colour = %v, want %v", i, got, want)
		}
	}

	// Padding stays white.
	if got := colour.ToRGB(img.At(0, 0)); got != (colour.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("padding colour = %v, want white", got)
	}
}

func TestSwatchesLabels(t *testing.T) {
	hexes := []colour.Hex{"#000000"}
	opts := DefaultOptions()

	plain := opts
	plain.Labels = false
	without, err := Swatches(hexes, plain)
	if err != nil {
		t.Fatalf("Swatches() error = %v", err)
	}
	with, err := Swatches(hexes, opts)
	if err != nil {
		t.Fatalf("Swatches() error = %v", err)
	}

	if bytes.Equal(without.Pix, with.Pix) {
		t.Error("Swatches() with labels drew nothing")
	}
}

func TestSwatchesErrors(t *testing.T) {
	if _, err := Swatches(nil, DefaultOptions()); err == nil {
		t.Error("Swatches(nil) expected error")
	}
	if _, err := Swatches(primaries, Options{Columns: 0, SwatchSize: 10}); err == nil {
		t.Error("Swatches() with zero columns expected error")
	}
	if _, err := Swatches([]colour.Hex{"#GGGGGG"}, DefaultOptions()); err == nil {
		t.Error("Swatches() with bad hex expected error")
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "swatches")

	path, err := WriteFile(dir, "ChineseSet8", primaries, DefaultOptions())
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if path != filepath.Join(dir, "ChineseSet8.png") {
		t.Errorf("WriteFile() path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got, want := img.Bounds(), DefaultOptions().Bounds(len(primaries)); got != want {
		t.Errorf("decoded bounds = %v, want %v", got, want)
	}

	if _, err := WriteFile(dir, "../escape", primaries, DefaultOptions()); err == nil {
		t.Error("WriteFile() expected error for traversal name")
	}
}
