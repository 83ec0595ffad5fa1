// Package render draws palettes as PNG swatch sheets.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/security"
)

// Options controls the swatch sheet layout.
type Options struct {
	// Columns is the number of swatches per row.
	Columns int
	// SwatchSize is the edge length of each square swatch in pixels.
	SwatchSize int
	// Padding is the gap around and between swatches.
	Padding int
	// Labels draws each colour's hex value inside its swatch.
	Labels bool
}

// DefaultOptions returns an 8-column sheet of 96px labelled swatches.
func DefaultOptions() Options {
	return Options{
		Columns:    8,
		SwatchSize: 96,
		Padding:    4,
		Labels:     true,
	}
}

// Bounds returns the sheet size for n colours.
func (o Options) Bounds(n int) image.Rectangle {
	cols := min(o.Columns, n)
	rows := (n + o.Columns - 1) / o.Columns
	w := cols*o.SwatchSize + (cols+1)*o.Padding
	h := rows*o.SwatchSize + (rows+1)*o.Padding
	return image.Rect(0, 0, w, h)
}

// SwatchRect returns the rectangle of the i-th swatch.
func (o Options) SwatchRect(i int) image.Rectangle {
	col, row := i%o.Columns, i/o.Columns
	x := o.Padding + col*(o.SwatchSize+o.Padding)
	y := o.Padding + row*(o.SwatchSize+o.Padding)
	return image.Rect(x, y, x+o.SwatchSize, y+o.SwatchSize)
}

func (o Options) validate() error {
	if o.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", o.Columns)
	}
	if o.SwatchSize < 1 {
		return fmt.Errorf("swatch size must be at least 1, got %d", o.SwatchSize)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", o.Padding)
	}
	return nil
}

// Swatches draws hexes left to right, top to bottom on a white sheet.
func Swatches(hexes []colour.Hex, opts Options) (*image.RGBA, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("no colours to render")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(opts.Bounds(len(hexes)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i, hex := range hexes {
		rgb, err := hex.RGB()
		if err != nil {
			return nil, err
		}
		rect := opts.SwatchRect(i)
		draw.Draw(img, rect, image.NewUniform(rgb.Color()), image.Point{}, draw.Src)

		if !opts.Labels {
			continue
		}
		label := string(hex)
		width := font.MeasureString(face, label).Ceil()
		if width > opts.SwatchSize {
			continue
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colour.LabelColour(rgb).Color()),
			Face: face,
			Dot: fixed.P(
				rect.Min.X+(opts.SwatchSize-width)/2,
				rect.Max.Y-opts.SwatchSize/8,
			),
		}
		d.DrawString(label)
	}

	return img, nil
}

// WritePNG renders hexes and encodes the sheet to w.
func WritePNG(w io.Writer, hexes []colour.Hex, opts Options) error {
	img, err := Swatches(hexes, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteFile renders hexes to dir/name.png and returns the written path.
// name must not escape dir.
func WriteFile(dir, name string, hexes []colour.Hex, opts Options) (string, error) {
	fileName := name + ".png"
	if err := security.ValidateFilePath(fileName, dir); err != nil {
		return "", fmt.Errorf("invalid swatch name %q: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create swatch directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	f, err := os.Create(path) // #nosec G304 - path validated above
	if err != nil {
		return "", fmt.Errorf("failed to create swatch file: %w", err)
	}

	writeErr := WritePNG(f, hexes, opts)
	closeErr := f.Close()
	if writeErr != nil {
		return "", writeErr
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close swatch file: %w", closeErr)
	}
	return path, nil
}
