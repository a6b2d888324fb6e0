package value

import (
	"math"
	"strconv"
	"strings"
)

// IsBool is true for a native go bool.
func IsBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

// IsInt is true for native go integers, and for floats holding a whole
// number (json decoding gives float64 for every number).  Bools are not ints.
func IsInt(v interface{}) bool {
	_, ok := ToInt64(v)
	return ok
}

// ToInt64 coerces interface{} integer values into int64
//
//   int(8,16,32,64), uint(8,16,32,64)   =>    int64
//   float32, float64 with no fraction   =>    int64
//   everything else                     =>    false
func ToInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case float32:
		return floatToInt(float64(val))
	case float64:
		return floatToInt(val)
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// IsFalse is true for false and for numeric zero, the only values
// boolean-ish options treat as off.
func IsFalse(v interface{}) bool {
	if bv, ok := v.(bool); ok {
		return !bv
	}
	switch val := v.(type) {
	case float32:
		return val == 0
	case float64:
		return val == 0
	}
	if iv, ok := ToInt64(v); ok {
		return iv == 0
	}
	return false
}

// ToStrings converts a []string or a []interface{} made only of strings.
func ToStrings(v interface{}) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// ToString renders scalar bools and numbers the way option values are
// written by users, ie True/False for bools.
func ToString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		if val {
			return "True", true
		}
		return "False", true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		if iv, ok := floatToInt(val); ok {
			return strconv.FormatInt(iv, 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	}
	if iv, ok := ToInt64(v); ok {
		return strconv.FormatInt(iv, 10), true
	}
	return "", false
}

// SplitList splits a comma separated option value into its items.
func SplitList(s string) []string {
	return strings.Split(s, ",")
}
