// Package security provides input bounding and path validation for chromaset.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ValidateFilePath validates a relative file name to be written beneath
// baseDir, preventing directory traversal.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	// Check for dangerous patterns
	if strings.Contains(filePath, "..") {
		return fmt.Errorf("file path contains directory traversal (..) - not allowed")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute file paths are not allowed")
	}

	// Ensure the final path would be within baseDir
	finalPath := filepath.Join(baseDir, filePath)
	cleanFinal := filepath.Clean(finalPath)
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) &&
		cleanFinal != cleanBase {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// SafeUint8 converts a channel value to uint8, reporting whether it was in
// the 0-255 range.
func SafeUint8(val int) (uint8, bool) {
	if val < 0 || val > 255 {
		return 0, false
	}
	return uint8(val), true
}

var errSizeLimit = errors.New("decompression size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bombs when reading compressed catalogs.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. A stream of exactly the limit
// ends with io.EOF; only a byte beyond it is an error.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		var extra [1]byte
		n, err := l.R.Read(extra[:])
		if n > 0 {
			return 0, errSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
