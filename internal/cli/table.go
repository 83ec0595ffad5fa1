package cli

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiPattern matches SGR escape sequences, which take no space on screen.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Alignment is a column's horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table is a plain-text table with columns sized to their widest cell.
// Widths are display widths, so CJK names and ANSI colour swatches line up.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	align   map[int]Alignment
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
		align:   make(map[int]Alignment),
	}
}

// SetAlign sets the alignment of a column.
func (t *Table) SetAlign(colIndex int, a Alignment) {
	t.align[colIndex] = a
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) == len(t.headers) {
		t.rows = append(t.rows, row)
		return
	}
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if t.align[i] == AlignRight {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)
	for _, row := range t.rows {
		writeLine(row)
	}

	return b.String()
}

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads s with spaces on the right to reach width cells.
// If s is already at least that wide, it is returned unchanged.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads s with spaces on the left to reach width cells.
func padLeft(s string, width int) string {
	if w := displayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
