package expr

import (
	"github.com/coraldb/reef"
	"github.com/coraldb/reef/rcode"
)

// Operator codes.  The table is a frozen server contract shared with
// the expression evaluator; entries must never be reassigned.
const (
	opEQ  = 1
	opNE  = 2
	opGT  = 3
	opGE  = 4
	opLT  = 5
	opLE  = 6
	opAnd = 16
	opOr  = 17
	opNot = 18
	opXor = 19

	opAdd   = 20
	opSub   = 21
	opMul   = 22
	opDiv   = 23
	opMod   = 26
	opAbs   = 27
	opFloor = 28
	opCeil  = 29
	opMin   = 50
	opMax   = 51

	opBin = 81

	opVarMapKey = 100
	opVarValue  = 101
	opVarIndex  = 102

	opQuote = 126
	opCall  = 127
)

// literal wraps a Value leaf.  Scalar literals pack bare; list
// literals pack quoted so the evaluator can tell data apart from an
// operator array.
type literal struct {
	val reef.Value
}

// Val embeds v as a literal operand.
func Val(v reef.Value) Node { return literal{v} }

func Int(i int64) Node     { return literal{reef.IntValue(i)} }
func Float(f float64) Node { return literal{reef.FloatValue(f)} }
func Str(s string) Node    { return literal{reef.StringValue(s)} }
func Bool(b bool) Node     { return literal{reef.BoolValue(b)} }
func Blob(b []byte) Node   { return literal{reef.BytesValue(b)} }
func Geo(json string) Node { return literal{reef.GeoValue(json)} }
func Nil() Node            { return literal{reef.Null} }

func (l literal) typeof() Type {
	switch l.val.Kind() {
	case reef.KindBool:
		return TypeBool
	case reef.KindInt:
		return TypeInt
	case reef.KindFloat:
		return TypeFloat
	case reef.KindString:
		return TypeString
	case reef.KindBytes:
		return TypeBlob
	case reef.KindList:
		return TypeList
	case reef.KindMap:
		return TypeMap
	case reef.KindGeo:
		return TypeGeo
	case reef.KindHLL:
		return TypeHLL
	}
	return TypeAny
}

func (l literal) pack(p *rcode.Packer) {
	if l.val.Kind() == reef.KindList {
		p.PackArrayHeader(2)
		p.PackInt(opQuote)
	}
	l.val.Pack(p)
}

// bin references a record bin with a declared result type.
type bin struct {
	name string
	typ  Type
}

func IntBin(name string) Node   { return bin{name, TypeInt} }
func FloatBin(name string) Node { return bin{name, TypeFloat} }
func StrBin(name string) Node   { return bin{name, TypeString} }
func BlobBin(name string) Node  { return bin{name, TypeBlob} }
func BoolBin(name string) Node  { return bin{name, TypeBool} }
func ListBin(name string) Node  { return bin{name, TypeList} }
func MapBin(name string) Node   { return bin{name, TypeMap} }
func GeoBin(name string) Node   { return bin{name, TypeGeo} }
func HLLBin(name string) Node   { return bin{name, TypeHLL} }

func (b bin) typeof() Type { return b.typ }

func (b bin) pack(p *rcode.Packer) {
	p.PackArrayHeader(3)
	p.PackInt(opBin)
	p.PackInt(int64(b.typ))
	p.PackString(b.name)
}

// loopVar references the implicit current child during a server-side
// filtered traversal.
type loopVar struct {
	code int64
	typ  Type
}

// CurrentKey references the current child's map key.  Loop-variable
// nodes are only meaningful inside the predicate of a filtered
// children step; the compiler does not check placement, so using one
// elsewhere compiles but fails at evaluation time.
func CurrentKey() Node { return loopVar{opVarMapKey, TypeAny} }

// CurrentValue references the current child's value.
func CurrentValue() Node { return loopVar{opVarValue, TypeAny} }

// CurrentIndex references the current child's list index.
func CurrentIndex() Node { return loopVar{opVarIndex, TypeInt} }

func (v loopVar) typeof() Type { return v.typ }

func (v loopVar) pack(p *rcode.Packer) {
	p.PackArrayHeader(1)
	p.PackInt(v.code)
}

// call invokes a collection-module operation inside an expression.
type call struct {
	module  int64
	command int64
	typ     Type
	args    []Node
}

// Call invokes command from the numbered server module with the given
// arguments, declaring ret as the result type.  Module and command
// numbers come from the server's module tables.
func Call(module, command int, ret Type, args ...Node) Node {
	return call{int64(module), int64(command), ret, args}
}

func (c call) typeof() Type { return c.typ }

func (c call) pack(p *rcode.Packer) {
	p.PackArrayHeader(4 + len(c.args))
	p.PackInt(opCall)
	p.PackInt(int64(c.typ))
	p.PackInt(c.module)
	p.PackInt(c.command)
	for _, a := range c.args {
		a.pack(p)
	}
}

func packOp(p *rcode.Packer, code int64, args []Node) {
	p.PackArrayHeader(1 + len(args))
	p.PackInt(code)
	for _, a := range args {
		a.pack(p)
	}
}
