package reef

import (
	"fmt"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func NewBool(b bool) Value { return BoolValue(b) }

func NewInt(i int64) Value { return IntValue(i) }

func NewFloat(f float64) Value { return FloatValue(f) }

func NewString(s string) Value { return StringValue(s) }

// NewBytes wraps b without copying; the caller must not modify it
// afterwards.
func NewBytes(b []byte) Value { return BytesValue(b) }

func NewList(elems ...Value) Value { return ListValue(elems) }

func NewMap(entries ...MapEntry) Value { return MapValue(entries) }

// NewGeoJSON wraps a GeoJSON document.  The text is carried opaquely;
// no validation happens client side.
func NewGeoJSON(s string) Value { return GeoValue(s) }

// NewHLL wraps an opaque HyperLogLog sketch, typically one previously
// returned by the server.
func NewHLL(b []byte) Value { return HLLValue(b) }

// NewValue converts a native Go value.  Supported inputs are nil,
// booleans, integers, floats, strings, byte slices, []any, []Value,
// and map[string]any; map keys are sorted so the result packs
// deterministically.  Unsupported types are a programmer error and
// panic.
func NewValue(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null
	case Value:
		return v
	case bool:
		return BoolValue(v)
	case int:
		return IntValue(v)
	case int8:
		return IntValue(v)
	case int16:
		return IntValue(v)
	case int32:
		return IntValue(v)
	case int64:
		return IntValue(v)
	case uint:
		return IntValue(int64(v))
	case uint8:
		return IntValue(int64(v))
	case uint16:
		return IntValue(int64(v))
	case uint32:
		return IntValue(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			panic(fmt.Sprintf("reef: uint64 value %d overflows the wire integer", v))
		}
		return IntValue(int64(v))
	case float32:
		return FloatValue(float64(v))
	case float64:
		return FloatValue(v)
	case string:
		return StringValue(v)
	case []byte:
		return BytesValue(v)
	case []Value:
		return ListValue(v)
	case []any:
		elems := make(ListValue, len(v))
		for i, e := range v {
			elems[i] = NewValue(e)
		}
		return elems
	case map[string]any:
		keys := maps.Keys(v)
		slices.Sort(keys)
		entries := make(MapValue, len(keys))
		for i, k := range keys {
			entries[i] = MapEntry{Key: StringValue(k), Value: NewValue(v[k])}
		}
		return entries
	}
	panic(fmt.Sprintf("reef: unsupported value type %T", x))
}
