package expr

import "github.com/coraldb/reef/rcode"

// boolOp is any operator whose result is a boolean: comparisons and
// logical connectives.
type boolOp struct {
	code int64
	args []Node
}

func (o boolOp) typeof() Type         { return TypeBool }
func (o boolOp) pack(p *rcode.Packer) { packOp(p, o.code, o.args) }

func compare(code int64, lhs, rhs Node) Node {
	return boolOp{code, []Node{lhs, rhs}}
}

func Eq(lhs, rhs Node) Node { return compare(opEQ, lhs, rhs) }
func Ne(lhs, rhs Node) Node { return compare(opNE, lhs, rhs) }
func Gt(lhs, rhs Node) Node { return compare(opGT, lhs, rhs) }
func Ge(lhs, rhs Node) Node { return compare(opGE, lhs, rhs) }
func Lt(lhs, rhs Node) Node { return compare(opLT, lhs, rhs) }
func Le(lhs, rhs Node) Node { return compare(opLE, lhs, rhs) }

// And is true when every operand is true.
func And(args ...Node) Node { return boolOp{opAnd, args} }

// Or is true when any operand is true.
func Or(args ...Node) Node { return boolOp{opOr, args} }

// Not negates its operand.
func Not(arg Node) Node { return boolOp{opNot, []Node{arg}} }

// Xor is true when an odd number of operands are true.
func Xor(args ...Node) Node { return boolOp{opXor, args} }

// arithOp is a numeric operator.  Its result type is inferred from
// the operands: all-integer stays integer, any float promotes the
// whole expression to float, and anything else is left open for the
// evaluator to decide.
type arithOp struct {
	code int64
	typ  Type
	args []Node
}

func (o arithOp) typeof() Type         { return o.typ }
func (o arithOp) pack(p *rcode.Packer) { packOp(p, o.code, o.args) }

func promote(args []Node) Type {
	typ := TypeInt
	for _, a := range args {
		switch a.typeof() {
		case TypeInt:
		case TypeFloat:
			return TypeFloat
		default:
			typ = TypeAny
		}
	}
	return typ
}

func arith(code int64, args []Node) Node {
	return arithOp{code, promote(args), args}
}

// Add sums its operands.
func Add(args ...Node) Node { return arith(opAdd, args) }

// Sub subtracts each remaining operand from the first.
func Sub(args ...Node) Node { return arith(opSub, args) }

// Mul multiplies its operands.
func Mul(args ...Node) Node { return arith(opMul, args) }

// Div divides the first operand by each remaining one.  Integer
// division truncates; division by zero fails at evaluation time.
func Div(args ...Node) Node { return arith(opDiv, args) }

// Mod yields the integer remainder of lhs divided by rhs.
func Mod(lhs, rhs Node) Node {
	return arithOp{opMod, TypeInt, []Node{lhs, rhs}}
}

// Abs yields the magnitude of its operand, preserving its type.
func Abs(arg Node) Node {
	return arithOp{opAbs, arg.typeof(), []Node{arg}}
}

// Floor rounds down to the nearest whole float.
func Floor(arg Node) Node {
	return arithOp{opFloor, TypeFloat, []Node{arg}}
}

// Ceil rounds up to the nearest whole float.
func Ceil(arg Node) Node {
	return arithOp{opCeil, TypeFloat, []Node{arg}}
}

// Min yields the smallest operand.
func Min(args ...Node) Node { return arith(opMin, args) }

// Max yields the largest operand.
func Max(args ...Node) Node { return arith(opMax, args) }
