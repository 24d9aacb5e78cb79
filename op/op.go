// Package op ties compiled path envelopes to database operations.
// The command layer assembling a wire request consumes Operations and
// dispatches on their Code, which decides whether the request must be
// classified as a write for transaction and replication purposes.
package op

import (
	"fmt"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/path"
)

// Code is the wire operation type.  Frozen server contract.
type Code int

const (
	CDTRead   Code = 3
	CDTModify Code = 4
)

func (c Code) String() string {
	switch c {
	case CDTRead:
		return "cdt-read"
	case CDTModify:
		return "cdt-modify"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Operation pairs a bin with a compiled payload and the operation
// type.
type Operation struct {
	Code    Code
	Bin     string
	Payload reef.Value
}

// Select builds the read operation fetching the elements chain
// selects from the collection stored in bin.
func Select(bin string, chain path.Chain, flags path.Flags) Operation {
	return Operation{
		Code:    CDTRead,
		Bin:     bin,
		Payload: reef.NewBytes(path.Select(chain, flags)),
	}
}

// Apply builds the write operation applying mod to the elements chain
// selects in bin.
func Apply(bin string, chain path.Chain, flags path.Flags, mod *expr.Expression) Operation {
	return Operation{
		Code:    CDTModify,
		Bin:     bin,
		Payload: reef.NewBytes(path.Modify(chain, flags, mod)),
	}
}

// IsWrite reports whether the operation mutates the record.
func (o Operation) IsWrite() bool { return o.Code == CDTModify }

func (o Operation) String() string {
	return fmt.Sprintf("%s(%s)", o.Code, o.Bin)
}
