package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/compression"
	"github.com/jmylchreest/chromaset/internal/security"
)

// Column names understood by LoadCSV.
const (
	ColumnNum            = "num"
	ColumnName           = "name"
	ColumnNameNative     = "name_ch"
	ColumnRGB            = "rgb"
	ColumnR              = "r"
	ColumnG              = "g"
	ColumnB              = "b"
	ColumnHex            = "hex"
	ColumnCategory       = "category"
	ColumnCategoryNative = "category_ch"
)

// Skip reasons reported in LoadResult.Skipped.
const (
	ReasonBlankName       = "blank name"
	ReasonNoIdeograph     = "no ideograph in name"
	ReasonNameTooLong     = "name too long"
	ReasonMissingColour   = "missing colour"
	ReasonInvalidColour   = "invalid colour"
	ReasonOutOfRange      = "rgb out of range"
	ReasonUnknownCategory = "unknown category"
)

// SkippedRow is a data row LoadCSV did not turn into a record.
type SkippedRow struct {
	Line   int
	Name   string
	Reason string
}

// TruncatedName is a row whose name was a lone category character, usually
// a sheet header that leaked into the data.
type TruncatedName struct {
	Line     int
	Name     string
	Category string
	// RGB is the "(r, g, b)" tuple when the row had a valid colour, else "N/A".
	RGB string
}

// LoadResult is the outcome of reading a catalog.
type LoadResult struct {
	Records   []Record
	Skipped   []SkippedRow
	Truncated []TruncatedName
}

// LoadOptions configures catalog loading.
type LoadOptions struct {
	Logger hclog.Logger
}

type columns struct {
	index map[string]int
}

func (c columns) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c columns) get(row []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseHeader(header []string) (columns, error) {
	c := columns{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		c.index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	if !c.has(ColumnNameNative) {
		return c, fmt.Errorf("missing required column %q", ColumnNameNative)
	}
	hasChannels := c.has(ColumnR) && c.has(ColumnG) && c.has(ColumnB)
	if !hasChannels && !c.has(ColumnHex) && !c.has(ColumnRGB) {
		return c, fmt.Errorf("missing colour columns: need %q, %q or r,g,b", ColumnHex, ColumnRGB)
	}
	if !c.has(ColumnCategory) && !c.has(ColumnCategoryNative) {
		return c, fmt.Errorf("missing category column: need %q or %q", ColumnCategory, ColumnCategoryNative)
	}
	return c, nil
}

// LoadCSV reads a catalog from r. Rows that cannot become records are
// reported in the result rather than failing the load.
func LoadCSV(r io.Reader, opts LoadOptions) (*LoadResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog header: %w", err)
	}

	result := &LoadResult{}
	rows := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		rows++
		line, _ := cr.FieldPos(0)
		result.addRow(cols, row, line, logger)
	}

	logger.Debug("read catalog", "rows", rows, "records", len(result.Records),
		"skipped", len(result.Skipped), "truncated", len(result.Truncated))
	if len(result.Truncated) > 0 {
		logger.Warn("skipped single-character colour names", "count", len(result.Truncated))
		for _, tn := range result.Truncated {
			logger.Debug("truncated name", "line", tn.Line, "name", tn.Name, "category", tn.Category, "rgb", tn.RGB)
		}
	}
	return result, nil
}

func (res *LoadResult) skip(line int, name, reason string) {
	res.Skipped = append(res.Skipped, SkippedRow{Line: line, Name: name, Reason: reason})
}

func (res *LoadResult) addRow(cols columns, row []string, line int, logger hclog.Logger) {
	category, categoryNative, categoryKnown := resolveCategory(cols, row)

	name, status := NormaliseName(cols.get(row, ColumnNameNative), categoryNative)
	switch status {
	case NameBlank:
		res.skip(line, name, ReasonBlankName)
		return
	case NameNoIdeograph:
		res.skip(line, name, ReasonNoIdeograph)
		return
	case NameTooLong:
		res.skip(line, name, ReasonNameTooLong)
		return
	case NameTruncated:
		tuple := "N/A"
		if rgb, err := parseColour(cols, row); err == nil {
			tuple = rgb.Tuple()
		}
		res.Truncated = append(res.Truncated, TruncatedName{Line: line, Name: name, Category: categoryNative, RGB: tuple})
		return
	}

	rgb, err := parseColour(cols, row)
	if err != nil {
		reason := ReasonInvalidColour
		var cerr *colourError
		if errors.As(err, &cerr) {
			reason = cerr.reason
		}
		res.skip(line, name, reason)
		return
	}

	if !categoryKnown {
		logger.Warn("skipping row with unknown category", "line", line, "name", name, "category", categoryNative)
		res.skip(line, name, ReasonUnknownCategory)
		return
	}

	res.Records = append(res.Records, Record{
		Hex:            rgb.Hex(),
		NameNative:     name,
		NamePhonetic:   cols.get(row, ColumnName),
		Category:       category,
		CategoryNative: categoryNative,
	})
}

// resolveCategory prefers the native label, mapped through
// NativeCategories. Without one, the English label is used as given.
func resolveCategory(cols columns, row []string) (Category, string, bool) {
	if native := cols.get(row, ColumnCategoryNative); native != "" {
		cat, ok := NativeCategories[native]
		return cat, native, ok
	}

	english := strings.ToLower(cols.get(row, ColumnCategory))
	if english == "" {
		return "", "", false
	}
	cat := Category(english)
	return cat, nativeLabel(cat), true
}

func nativeLabel(cat Category) string {
	for native, c := range NativeCategories {
		if c == cat {
			return native
		}
	}
	return ""
}

type colourError struct {
	reason string
	err    error
}

func (e *colourError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.reason, e.err)
	}
	return e.reason
}

func (e *colourError) Unwrap() error { return e.err }

// parseColour reads r,g,b channels when present, otherwise the rgb tuple,
// otherwise the hex column.
func parseColour(cols columns, row []string) (colour.RGB, error) {
	r, g, b := cols.get(row, ColumnR), cols.get(row, ColumnG), cols.get(row, ColumnB)
	if r != "" || g != "" || b != "" {
		return parseChannels(r, g, b)
	}

	if tuple := cols.get(row, ColumnRGB); tuple != "" {
		parts := strings.Split(strings.Trim(tuple, "() "), ",")
		if len(parts) != 3 {
			return colour.RGB{}, &colourError{reason: ReasonInvalidColour, err: fmt.Errorf("bad rgb tuple %q", tuple)}
		}
		return parseChannels(parts[0], parts[1], parts[2])
	}

	if hex := cols.get(row, ColumnHex); hex != "" {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return colour.RGB{}, &colourError{reason: ReasonInvalidColour, err: err}
		}
		return rgb, nil
	}

	return colour.RGB{}, &colourError{reason: ReasonMissingColour}
}

// parseChannels accepts integer or decimal channel values; decimals are
// truncated.
func parseChannels(values ...string) (colour.RGB, error) {
	var out [3]uint8
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return colour.RGB{}, &colourError{reason: ReasonMissingColour}
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return colour.RGB{}, &colourError{reason: ReasonInvalidColour, err: err}
		}
		c, ok := security.SafeUint8(int(f))
		if !ok {
			return colour.RGB{}, &colourError{reason: ReasonOutOfRange, err: fmt.Errorf("channel value %s", v)}
		}
		out[i] = c
	}
	return colour.RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// LoadFile reads a catalog CSV from path, decompressing .gz, .bz2 and .xz
// files on the fly.
func LoadFile(path string, opts LoadOptions) (*LoadResult, error) {
	f, err := compression.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := LoadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return res, nil
}
