// Package path compiles walks into nested collection values.
//
// A Chain is an ordered sequence of steps describing how the server
// navigates from a bin's top-level value into a nested list or map:
// by map key, by list index, into every child, or into the children
// matching a compiled predicate.  Select and Modify assemble a chain
// plus control flags into the operation envelope the collection
// engine decodes.  Independently of any operation, Token and
// FromToken round-trip a chain through an opaque text form for
// persistence in index definitions.
package path

import (
	"fmt"
	"strings"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/rcode"
)

// StepID identifies a step kind on the wire.  The numbering is a
// frozen server contract; ids must never be reassigned.
type StepID int

const (
	StepMapKey      StepID = 0x00
	StepMapValue    StepID = 0x01
	StepListIndex   StepID = 0x02
	StepListValue   StepID = 0x03
	StepFilter      StepID = 0x04
	StepAllChildren StepID = 0x05
)

func (id StepID) String() string {
	switch id {
	case StepMapKey:
		return "mapKey"
	case StepMapValue:
		return "mapValue"
	case StepListIndex:
		return "listIndex"
	case StepListValue:
		return "listValue"
	case StepFilter:
		return "filter"
	case StepAllChildren:
		return "allChildren"
	}
	return fmt.Sprintf("step(%#02x)", int(id))
}

// Payload is a step's single argument: either a literal Value or a
// compiled filter predicate.  A step carries exactly one of the two
// shapes, never both and never neither.
type Payload interface {
	pack(p *rcode.Packer)
}

// Literal is a payload carrying a Value, packed directly.
type Literal struct {
	Value reef.Value
}

func (l Literal) pack(p *rcode.Packer) { l.Value.Pack(p) }

// Filter is a payload carrying a compiled predicate.  The predicate
// bytes are packed as an opaque byte string and are not
// re-interpreted; the collection engine evaluates them against each
// child during traversal.
type Filter struct {
	Pred *expr.Expression
}

func (f Filter) pack(p *rcode.Packer) { p.PackBytes(f.Pred.Bytes()) }

// Step is one hop of a walk.
type Step struct {
	ID      StepID
	Payload Payload
}

// MapKey descends into the map entry under key.
func MapKey(key reef.Value) Step { return Step{StepMapKey, Literal{key}} }

// MapValue descends into the map entries whose value equals v.
func MapValue(v reef.Value) Step { return Step{StepMapValue, Literal{v}} }

// ListIndex descends into the list element at index i.  A negative
// index counts back from the end of the list.
func ListIndex(i int) Step {
	return Step{StepListIndex, Literal{reef.NewInt(int64(i))}}
}

// ListValue descends into the list elements equal to v.
func ListValue(v reef.Value) Step { return Step{StepListValue, Literal{v}} }

// AllChildren descends into every child of the current collection.
func AllChildren() Step { return Step{StepAllChildren, Literal{reef.Null}} }

// FilteredChildren descends into the children for which pred is true.
// Loop-variable nodes inside pred refer to the child under
// consideration.
func FilteredChildren(pred *expr.Expression) Step {
	return Step{StepFilter, Filter{pred}}
}

func (s Step) String() string {
	switch payload := s.Payload.(type) {
	case Literal:
		if s.ID == StepAllChildren {
			return "allChildren()"
		}
		return fmt.Sprintf("%s(%s)", s.ID, payload.Value)
	case Filter:
		return fmt.Sprintf("%s(%d byte predicate)", s.ID, payload.Pred.Size())
	}
	return s.ID.String()
}

// Chain is an ordered walk; the leftmost step addresses the outermost
// collection.  An empty Chain addresses the bin value itself.  Chains
// are immutable once built and may be shared across concurrent
// compilations.
type Chain []Step

// pack emits the chain as an array of 2N elements alternating step id
// and payload.
func (c Chain) pack(p *rcode.Packer) {
	p.PackArrayHeader(2 * len(c))
	for _, s := range c {
		p.PackInt(int64(s.ID))
		s.Payload.pack(p)
	}
}

func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}
