// Package compression opens catalog files that may be gzip, bzip2 or xz
// compressed.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/chromaset/internal/security"
)

// MaxDecompressedSize bounds how much data a single catalog may expand to.
const MaxDecompressedSize = 100 * 1024 * 1024

// Format is a supported compression format.
type Format string

// Supported formats.
const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
	FormatXz    Format = "xz"
)

var magic = []struct {
	format Format
	prefix []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
}

// FormatFromName detects the format from a file extension.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".bz2", ".bzip2":
		return FormatBzip2
	case ".xz":
		return FormatXz
	default:
		return FormatNone
	}
}

// FormatFromHeader detects the format from the leading bytes of a stream.
func FormatFromHeader(header []byte) Format {
	for _, m := range magic {
		if bytes.HasPrefix(header, m.prefix) {
			return m.format
		}
	}
	return FormatNone
}

// NewReader wraps r in a decompressor for format. The result is bounded to
// MaxDecompressedSize bytes.
func NewReader(r io.Reader, format Format) (io.Reader, error) {
	var dr io.Reader
	switch format {
	case FormatNone:
		dr = r
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case FormatBzip2:
		dr = bzip2.NewReader(r)
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}
	return security.NewLimitedReader(dr, MaxDecompressedSize), nil
}

// File is an opened, possibly compressed, file.
type File struct {
	io.Reader
	Format Format
	f      *os.File
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Open opens path and transparently decompresses it. The format is taken
// from the extension, falling back to the file header when the extension is
// not recognised.
func Open(path string) (*File, error) {
	f, err := os.Open(path) // #nosec G304 - catalog path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	format := FormatFromName(path)
	if format == FormatNone {
		header, _ := br.Peek(6)
		format = FormatFromHeader(header)
	}

	r, err := NewReader(br, format)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &File{Reader: r, Format: format, f: f}, nil
}
