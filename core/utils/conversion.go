package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ToDecimal converts the numeric types found in decoded documents to a decimal.
// It handles json.Number (JSON), the integer and float kinds produced by YAML
// and decimals. Strings and booleans are not numbers.
func ToDecimal(val any) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case json.Number:
		d, err := decimal.NewFromString(string(v))
		return d, err == nil
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case uint:
		return decimal.NewFromUint64(uint64(v)), true
	case uint64:
		return decimal.NewFromUint64(v), true
	case uint32:
		return decimal.NewFromUint64(uint64(v)), true
	case uint16:
		return decimal.NewFromInt(int64(v)), true
	case uint8:
		return decimal.NewFromInt(int64(v)), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(v), true
	default:
		return decimal.Decimal{}, false
	}
}

// IsNumber reports whether val is one of the numeric document types.
func IsNumber(val any) bool {
	_, ok := ToDecimal(val)
	return ok
}

// IsInteger reports whether val is a number without fractional part (1 and 1.0 both count).
func IsInteger(val any) bool {
	d, ok := ToDecimal(val)
	return ok && d.Equal(d.Truncate(0))
}

// ToInt converts an integral document number to int.
func ToInt(val any) (int, bool) {
	d, ok := ToDecimal(val)
	if !ok || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseBool parses query and flag strings, returning def when s is empty or invalid.
func ParseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
