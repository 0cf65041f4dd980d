// Package dataset defines the rows a chart displays.
//
// A [Value] is a closed tagged union: a number, a string, or the invalid
// marker. The invalid marker denotes a missing or unparsable cell; it is
// excluded from domain statistics, renders as an out-of-axis indicator, and
// never satisfies an active range brush.
//
// Items are supplied wholesale on every data update:
//
//	items := []dataset.Item{
//	    {ID: 0, Values: map[string]dataset.Value{"Speed": dataset.Number(10), "Make": dataset.String("vw")}},
//	    {ID: 1, Values: map[string]dataset.Value{"Speed": dataset.Invalid(), "Make": dataset.String("bmw")}},
//	}
package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// KindInvalid is the missing/invalid marker. It is the zero value.
	KindInvalid ValueKind = iota
	KindNumber
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a single cell of a data item.
// The zero Value is the invalid marker.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// Number returns a numeric value. NaN and infinities become the invalid marker.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// String returns a categorical value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Invalid returns the invalid marker.
func Invalid() Value {
	return Value{}
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsInvalid reports whether v is the invalid marker.
func (v Value) IsInvalid() bool { return v.kind == KindInvalid }

// Float returns the numeric payload. ok is false for non-numbers.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload. ok is false for non-strings.
func (v Value) Text() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// String formats v for display. The invalid marker prints as "NaN".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return "NaN"
	}
}

// MarshalJSON encodes numbers as JSON numbers, strings as JSON strings and
// the invalid marker as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	default:
		*v = Invalid()
	}
	return nil
}

// ParseValue converts a raw text cell into a Value.
// Empty cells and "NaN" (any case) are invalid, cells that parse as floats
// are numbers, everything else is a string.
func ParseValue(s string) Value {
	t := strings.TrimSpace(s)
	if t == "" || strings.EqualFold(t, "nan") {
		return Invalid()
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return Number(f)
	}
	return String(t)
}
