package parse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int converts raw into an int. Integral JSON numbers and numeric strings
// are accepted; fractional values, "", nil and anything else are not.
func Int(raw any) (int, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		return integral(v)
	case float32:
		return integral(float64(v))
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IntOr is Int with a fallback for values that do not convert.
func IntOr(raw any, def int) int {
	if n, ok := Int(raw); ok {
		return n
	}
	return def
}

// Float converts raw into a float64.
func Float(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FloatOr is Float with a fallback for values that do not convert.
func FloatOr(raw any, def float64) float64 {
	if f, ok := Float(raw); ok {
		return f
	}
	return def
}

// BoolFromInt interprets Grocy's integer booleans. Anything that converts
// to a non-zero int is true; null and unconvertible values are false.
func BoolFromInt(raw any) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	n, ok := Int(raw)
	return ok && n != 0
}

// Truthy reports whether a config value should count as enabled. Booleans,
// numbers and strings are handled; "0" and "false" strings are false.
func Truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s != "" && s != "0" && s != "false"
	default:
		f, ok := Float(v)
		return ok && f != 0
	}
}

func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}
