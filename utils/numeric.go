package utils

import "strconv"

// FloatField extracts a numeric value from a decoded JSON object, trying each
// key in order and returning the first one present. Providers report the same
// nutrient under different keys depending on API version, and sometimes as a
// string; anything missing or unparseable yields 0 so a single bad field
// never drops the whole record.
func FloatField(obj map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || v == nil {
			continue
		}
		return ToFloat(v)
	}
	return 0
}

// ToFloat coerces a decoded JSON value to float64, defaulting to 0.
func ToFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// StringField extracts the first non-empty string among the given keys.
func StringField(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
