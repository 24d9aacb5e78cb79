// Package expr builds and compiles the filter and transformation
// expressions evaluated server side by CoralDB.  An expression is
// assembled as an immutable tree of Nodes and compiled exactly once by
// Build, which packs every node in a fixed pre-order into the wire
// encoding and records the tree's declared result type.  The resulting
// Expression is immutable and may be embedded in any number of
// operations concurrently.
package expr

import (
	"github.com/coraldb/reef/rcode"
)

// Type is an expression's declared result type.  The numeric codes are
// a frozen server contract.
type Type int

const (
	TypeAny    Type = 0
	TypeBool   Type = 1
	TypeInt    Type = 2
	TypeString Type = 3
	TypeList   Type = 4
	TypeMap    Type = 5
	TypeBlob   Type = 6
	TypeFloat  Type = 7
	TypeGeo    Type = 8
	TypeHLL    Type = 9
)

func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeBlob:
		return "blob"
	case TypeFloat:
		return "float"
	case TypeGeo:
		return "geo"
	case TypeHLL:
		return "hll"
	}
	return "any"
}

// A Node is one operator or leaf of an expression tree.  Nodes are
// immutable; the same node may appear in several trees.
type Node interface {
	typeof() Type
	pack(p *rcode.Packer)
}

// An Expression is a compiled expression: the exact wire bytes plus
// the declared result type.  Build compiles once; the result is
// immutable and reusable across operations.
type Expression struct {
	bytes []byte
	typ   Type
}

// Build compiles the tree rooted at root.  Compilation is pure and
// deterministic: building the same tree twice yields identical bytes.
func Build(root Node) *Expression {
	return &Expression{
		bytes: rcode.Pack(root.pack),
		typ:   root.typeof(),
	}
}

// FromBytes wraps already-compiled expression bytes, e.g. recovered
// from a persisted context token.  The bytes are copied and treated as
// opaque; the result type is unknowable and reported as any.
func FromBytes(b []byte) *Expression {
	return &Expression{bytes: append([]byte(nil), b...), typ: TypeAny}
}

// Bytes returns the compiled wire bytes.  The slice is shared; treat
// it as read-only.
func (e *Expression) Bytes() []byte { return e.bytes }

// Type returns the declared result type.
func (e *Expression) Type() Type { return e.typ }

// Size returns the compiled byte length.
func (e *Expression) Size() int { return len(e.bytes) }
