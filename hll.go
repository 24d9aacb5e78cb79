package reef

import (
	"github.com/axiomhq/hyperloglog"
)

// NewHLLFromSketch serializes a hyperloglog sketch into an HLL Value,
// e.g. to seed a bin with a client-computed sketch.
func NewHLLFromSketch(sk *hyperloglog.Sketch) (Value, error) {
	b, err := sk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return HLLValue(b), nil
}

// Sketch deserializes the value back into a hyperloglog sketch.
func (v HLLValue) Sketch() (*hyperloglog.Sketch, error) {
	var sk hyperloglog.Sketch
	if err := sk.UnmarshalBinary(v); err != nil {
		return nil, err
	}
	return &sk, nil
}

// Estimate returns the sketch's cardinality estimate.
func (v HLLValue) Estimate() (uint64, error) {
	sk, err := v.Sketch()
	if err != nil {
		return 0, err
	}
	return sk.Estimate(), nil
}
