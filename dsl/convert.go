package dsl

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// asInt64 widens any integer-kinded value to int64. over reports a value
// above MaxInt64 (only possible from uint/uint64 inputs); ok reports whether
// the value was integral at all. json.Number is accepted so JSON-borne
// values validate without a prior conversion pass.
func asInt64(v any) (i int64, over bool, ok bool) {
	switch t := v.(type) {
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(t).Int(), false, true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(t).Uint()
		if u > math.MaxInt64 {
			return 0, true, true
		}
		return int64(u), false, true
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return n, false, true
		}
		if _, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return 0, true, true
		}
		return 0, false, false
	}
	return 0, false, false
}

// asUint64 widens any integer-kinded value to uint64. neg reports a negative
// input (a range violation for unsigned schemas, not a type error).
func asUint64(v any) (u uint64, neg bool, ok bool) {
	switch t := v.(type) {
	case int, int8, int16, int32, int64:
		i := reflect.ValueOf(t).Int()
		if i < 0 {
			return 0, true, true
		}
		return uint64(i), false, true
	case uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(t).Uint(), false, true
	case json.Number:
		if n, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return n, false, true
		}
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil && i < 0 {
			return 0, true, true
		}
		return 0, false, false
	}
	return 0, false, false
}

// asFloat64 widens any numeric value to float64.
func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float32, float64:
		return reflect.ValueOf(t).Float(), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return f, err == nil
	}
	return 0, false
}

// asBigInt converts integral values to *big.Int.
func asBigInt(v any) (*big.Int, bool) {
	switch t := v.(type) {
	case *big.Int:
		return t, true
	case int, int8, int16, int32, int64:
		return big.NewInt(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return new(big.Int).SetUint64(reflect.ValueOf(t).Uint()), true
	case json.Number:
		n, ok := new(big.Int).SetString(t.String(), 10)
		return n, ok
	}
	return nil, false
}
