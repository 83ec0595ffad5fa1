package catalog

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted native name, in runes.
const MaxNameLength = 10

// categoryRunes are single characters that name a colour family. A name made
// of just one of them is usually a sheet header that leaked into the data.
const categoryRunes = "红橙黄绿青蓝紫灰褐黑白"

// NameStatus reports what NormaliseName decided about a raw name.
type NameStatus int

const (
	// NameOK means the normalised name is usable.
	NameOK NameStatus = iota
	// NameBlank means the name was empty after trimming.
	NameBlank
	// NameNoIdeograph means the name contains no CJK ideograph.
	NameNoIdeograph
	// NameTooLong means the name exceeds MaxNameLength runes.
	NameTooLong
	// NameTruncated means the name is a single category character that
	// matches the row's category label.
	NameTruncated
)

func (s NameStatus) String() string {
	switch s {
	case NameOK:
		return "ok"
	case NameBlank:
		return "blank"
	case NameNoIdeograph:
		return "no ideograph"
	case NameTooLong:
		return "too long"
	case NameTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// NormaliseName cleans a raw native name. Newlines become spaces, only the
// part before the first "/" is kept, and surrounding space is trimmed.
// categoryLabel is the native category of the row, used to spot truncated
// header names.
func NormaliseName(raw, categoryLabel string) (string, NameStatus) {
	name := strings.TrimSpace(raw)
	if name == "" || name == "nan" {
		return "", NameBlank
	}

	name = strings.NewReplacer("\n", " ", "\r", " ").Replace(name)
	if before, _, found := strings.Cut(name, "/"); found {
		name = before
	}
	name = strings.TrimSpace(name)

	if !hasIdeograph(name) {
		return name, NameNoIdeograph
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return name, NameTooLong
	}

	if utf8.RuneCountInString(name) == 1 && strings.Contains(categoryRunes, name) {
		label := strings.TrimSpace(categoryLabel)
		if name == label || strings.Contains(label, name) {
			return name, NameTruncated
		}
	}

	return name, NameOK
}

func hasIdeograph(s string) bool {
	for _, r := range s {
		if r >= '\u4e00' && r <= '\u9fff' {
			return true
		}
	}
	return false
}
