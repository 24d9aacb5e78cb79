// Package reef models the values, keys, and typed leaves that CoralDB
// path operations and filter expressions are compiled from.  A Value is
// immutable once constructed and knows how to pack itself into the wire
// encoding; collections nest without limit.  Values, like compiled
// expressions and context chains, may be shared freely across
// concurrent compilations.
package reef

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/coraldb/reef/rcode"
)

// Kind identifies a Value variant.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindGeo
	KindHLL
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindGeo:
		return "geo"
	case KindHLL:
		return "hll"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ext tags distinguishing domain scalars on the wire.  Frozen server
// contract.
const (
	ExtGeoJSON int8 = 0x17
	ExtHLL     int8 = 0x12
)

// A Value is one tagged, immutable leaf of the data model.  Pack
// serializes the value with the minimal correct encoding for its kind;
// it is called twice per compilation, once to measure and once to
// emit, and must behave identically both times.
type Value interface {
	Kind() Kind
	Pack(p *rcode.Packer)
	String() string
}

// Null is the null Value.
var Null Value = NullValue{}

type NullValue struct{}

func (NullValue) Kind() Kind           { return KindNull }
func (NullValue) Pack(p *rcode.Packer) { p.PackNil() }
func (NullValue) String() string       { return "null" }

type BoolValue bool

func (BoolValue) Kind() Kind             { return KindBool }
func (v BoolValue) Pack(p *rcode.Packer) { p.PackBool(bool(v)) }
func (v BoolValue) String() string       { return strconv.FormatBool(bool(v)) }

type IntValue int64

func (IntValue) Kind() Kind             { return KindInt }
func (v IntValue) Pack(p *rcode.Packer) { p.PackInt(int64(v)) }
func (v IntValue) String() string       { return strconv.FormatInt(int64(v), 10) }

type FloatValue float64

func (FloatValue) Kind() Kind             { return KindFloat }
func (v FloatValue) Pack(p *rcode.Packer) { p.PackFloat64(float64(v)) }
func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

type StringValue string

func (StringValue) Kind() Kind             { return KindString }
func (v StringValue) Pack(p *rcode.Packer) { p.PackString(string(v)) }
func (v StringValue) String() string       { return strconv.Quote(string(v)) }

type BytesValue []byte

func (BytesValue) Kind() Kind             { return KindBytes }
func (v BytesValue) Pack(p *rcode.Packer) { p.PackBytes(v) }
func (v BytesValue) String() string       { return "0x" + hex.EncodeToString(v) }

type ListValue []Value

func (ListValue) Kind() Kind { return KindList }

func (v ListValue) Pack(p *rcode.Packer) {
	p.PackArrayHeader(len(v))
	for _, elem := range v {
		elem.Pack(p)
	}
}

func (v ListValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MapEntry is one key-value pair of a MapValue.
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue is an ordered sequence of entries.  Entry order is the wire
// order; packing never reorders, so a MapValue packs identically every
// time.
type MapValue []MapEntry

func (MapValue) Kind() Kind { return KindMap }

func (v MapValue) Pack(p *rcode.Packer) {
	p.PackMapHeader(len(v))
	for _, e := range v {
		e.Key.Pack(p)
		e.Value.Pack(p)
	}
}

func (v MapValue) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Key.String())
		b.WriteByte(':')
		b.WriteString(e.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

// GeoValue holds GeoJSON text.
type GeoValue string

func (GeoValue) Kind() Kind             { return KindGeo }
func (v GeoValue) Pack(p *rcode.Packer) { p.PackExt(ExtGeoJSON, []byte(v)) }
func (v GeoValue) String() string       { return "geo(" + strconv.Quote(string(v)) + ")" }

// HLLValue holds an opaque HyperLogLog sketch.
type HLLValue []byte

func (HLLValue) Kind() Kind             { return KindHLL }
func (v HLLValue) Pack(p *rcode.Packer) { p.PackExt(ExtHLL, v) }
func (v HLLValue) String() string       { return fmt.Sprintf("hll(%d bytes)", len(v)) }

// Equal reports whether two Values are semantically equal: same kind
// and same contents, with map entries compared in wire order.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NullValue:
		return true
	case BoolValue:
		return av == b.(BoolValue)
	case IntValue:
		return av == b.(IntValue)
	case FloatValue:
		return av == b.(FloatValue)
	case StringValue:
		return av == b.(StringValue)
	case BytesValue:
		return bytes.Equal(av, b.(BytesValue))
	case GeoValue:
		return av == b.(GeoValue)
	case HLLValue:
		return bytes.Equal(av, b.(HLLValue))
	case ListValue:
		bv := b.(ListValue)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case MapValue:
		bv := b.(MapValue)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i].Key, bv[i].Key) || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
