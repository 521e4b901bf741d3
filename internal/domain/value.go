package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind distinguishes the JSON shapes a dataset field can take.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueNumber
	ValueText
)

// Value is a dataset field as it appeared in the source document: a number,
// free text such as "7,5 %" or "150 - 200", or null. Coercion to a number
// happens at read time, see [CoerceNumber].
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

// Num returns a numeric Value.
func Num(f float64) Value { return Value{Kind: ValueNumber, Number: f} }

// Text returns a textual Value.
func Text(s string) Value { return Value{Kind: ValueText, Text: s} }

// IsNull reports whether the field was absent or null.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = Value{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode text value: %w", err)
		}
		*v = Text(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("decode numeric value: %w", err)
		}
		*v = Num(f)
	default:
		// Booleans, objects and arrays are kept verbatim; they never coerce
		// to a number and render as the placeholder.
		*v = Text(string(b))
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}
