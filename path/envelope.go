package path

import (
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/rcode"
)

// envelopeTag discriminates a path envelope from other collection
// operation payloads; the server dispatches on the tag together with
// the top-level array arity.
const envelopeTag = 0xFE

// Flags control what a select returns and how traversal reacts to a
// type mismatch.  Bits combine freely.
type Flags int

const (
	// MatchingTree returns the matched elements nested under their
	// enclosing collections.
	MatchingTree Flags = 0x00
	// LeafValue returns the matched values themselves.
	LeafValue Flags = 0x01
	// MapKeys returns the matched map keys; combined with LeafValue it
	// returns key-value pairs.
	MapKeys Flags = 0x02
	// Apply marks a modify envelope.  Modify forces it on; callers
	// never set it themselves.
	Apply Flags = 0x04
	// NoFail skips elements whose type does not match the walk instead
	// of failing the whole operation.
	NoFail Flags = 0x10
)

// Select compiles the read envelope for chain: a 3-element array
// holding the envelope tag, the packed chain, and flags.
func Select(chain Chain, flags Flags) []byte {
	return rcode.Pack(func(p *rcode.Packer) {
		p.PackArrayHeader(3)
		p.PackInt(envelopeTag)
		chain.pack(p)
		p.PackInt(int64(flags))
	})
}

// Modify compiles the write envelope for chain: a 4-element array
// holding the envelope tag, the packed chain, flags with the Apply
// bit forced on, and the compiled modification expression.  The
// server applies mod to every element the chain selects.
func Modify(chain Chain, flags Flags, mod *expr.Expression) []byte {
	return rcode.Pack(func(p *rcode.Packer) {
		p.PackArrayHeader(4)
		p.PackInt(envelopeTag)
		chain.pack(p)
		p.PackInt(int64(flags | Apply))
		p.PackBytes(mod.Bytes())
	})
}
