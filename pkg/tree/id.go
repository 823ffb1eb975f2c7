package tree

import (
	"encoding/json"
	"math"
	"reflect"
)

// validID reports whether v can serve as an identifier: non-nil and usable
// with == and as a map key.
func validID(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Comparable()
}

// normalizeID maps numeric identifiers onto int64 where the value is
// integral, so 1, int32(1) and float64(1) compare equal. JSON decoding
// produces float64 for every number; callers usually pass ints.
func normalizeID(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return normalizeFloat(float64(x))
	case float64:
		return normalizeFloat(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return x.String()
	}
	return v
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}
	return int64(u)
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}

// sameID compares two identifiers by value. Nil never matches.
func sameID(a, b any) bool {
	if !validID(a) || !validID(b) {
		return false
	}
	return normalizeID(a) == normalizeID(b)
}
