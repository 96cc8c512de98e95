package preset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind describes which side of the Value union is populated.
type ValueKind string

const (
	// ValueKindNumber represents decimal numbers.
	ValueKindNumber ValueKind = "number"
	// ValueKindText represents plain UTF-8 strings.
	ValueKindText ValueKind = "string"
)

// Value is a parameter value: either a decimal number or a string, never both.
type Value struct {
	kind ValueKind
	num  decimal.Decimal
	text string
}

// NewNumber wraps a decimal number.
func NewNumber(d decimal.Decimal) Value {
	return Value{kind: ValueKindNumber, num: d}
}

// NewFloat wraps a float64 using its shortest decimal representation.
func NewFloat(f float64) Value {
	return NewNumber(decimal.NewFromFloat(f))
}

// NewText wraps a string.
func NewText(s string) Value {
	return Value{kind: ValueKindText, text: s}
}

// ParseValue tries a numeric parse first and falls back to the literal string.
func ParseValue(raw string) Value {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		if d, err := decimal.NewFromString(trimmed); err == nil {
			return NewNumber(d)
		}
	}
	return NewText(raw)
}

// Kind returns the populated side of the union.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueKindText
	}
	return v.kind
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.kind == ValueKindNumber
}

// Decimal returns the numeric value and whether the value is a number.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.num, v.kind == ValueKindNumber
}

// Text returns the string value and whether the value is text.
func (v Value) Text() (string, bool) {
	return v.text, v.kind != ValueKindNumber
}

// Equal compares two values. A number never equals a string.
func (v Value) Equal(other Value) bool {
	if v.IsNumber() != other.IsNumber() {
		return false
	}
	if v.IsNumber() {
		return v.num.Equal(other.num)
	}
	return v.text == other.text
}

// String renders numbers in canonical decimal form and text verbatim.
func (v Value) String() string {
	if v.IsNumber() {
		return FormatDecimal(v.num)
	}
	return v.text
}

// FormatDecimal renders d without exponent and with at least one fractional digit.
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON writes numbers as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNumber() {
		return []byte(FormatDecimal(v.num)), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewText(s)
		return nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fmt.Errorf("parameter value %s is neither number nor string: %w", trimmed, err)
	}
	*v = NewNumber(d)
	return nil
}

// documentValue returns the representation used inside canonical documents.
func (v Value) documentValue() any {
	if v.IsNumber() {
		return json.Number(FormatDecimal(v.num))
	}
	return v.text
}
