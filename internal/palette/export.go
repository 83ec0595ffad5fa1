package palette

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// SetMap encodes sets as a JSON object of name to colours, keeping the
// order of the slice rather than sorting names.
type SetMap []Set

// MarshalJSON implements json.Marshaler.
func (m SetMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		colours := s.Colours
		if colours == nil {
			colours = []colour.Hex{}
		}
		value, err := json.Marshal(colours)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", s.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup returns the set called name.
func (m SetMap) Lookup(name string) (Set, bool) {
	for _, s := range m {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}
