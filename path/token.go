package path

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/rcode"
)

// ErrBadToken indicates a context token that does not decode to a
// well-formed chain.
var ErrBadToken = errors.New("malformed context token")

// Token encodes the chain as an opaque text token, safe to persist in
// an index definition and exchange out of band.
func (c Chain) Token() string {
	return base64.StdEncoding.EncodeToString(rcode.Pack(c.pack))
}

// FromToken decodes a token produced by Token.  Decoding is whole or
// nothing: one malformed byte fails the entire token.  Integer
// payloads decode at the wire's single width, so a literal built from
// a narrower integer comes back value-equal but widened.
func FromToken(token string) (Chain, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
	}
	u := rcode.NewUnpacker(raw)
	n, err := u.ArrayHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: odd element count %d", ErrBadToken, n)
	}
	chain := make(Chain, 0, n/2)
	for i := 0; i < n/2; i++ {
		id, err := u.Int()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
		}
		step, err := decodeStep(u, StepID(id))
		if err != nil {
			return nil, err
		}
		chain = append(chain, step)
	}
	if !u.Done() {
		return nil, fmt.Errorf("%w: trailing bytes after chain", ErrBadToken)
	}
	return chain, nil
}

func decodeStep(u *rcode.Unpacker, id StepID) (Step, error) {
	switch id {
	case StepFilter:
		b, err := u.Bytes()
		if err != nil {
			return Step{}, fmt.Errorf("%w: %s", ErrBadToken, err)
		}
		return Step{id, Filter{expr.FromBytes(b)}}, nil
	case StepMapKey, StepMapValue, StepListIndex, StepListValue, StepAllChildren:
		x, err := u.Any()
		if err != nil {
			return Step{}, fmt.Errorf("%w: %s", ErrBadToken, err)
		}
		v, err := valueFromAny(x)
		if err != nil {
			return Step{}, err
		}
		return Step{id, Literal{v}}, nil
	}
	return Step{}, fmt.Errorf("%w: unknown step id %#02x", ErrBadToken, int(id))
}

func valueFromAny(x any) (reef.Value, error) {
	switch v := x.(type) {
	case nil:
		return reef.Null, nil
	case bool:
		return reef.NewBool(v), nil
	case int64:
		return reef.NewInt(v), nil
	case float64:
		return reef.NewFloat(v), nil
	case string:
		return reef.NewString(v), nil
	case []byte:
		return reef.NewBytes(v), nil
	case []any:
		elems := make([]reef.Value, len(v))
		for i, e := range v {
			elem, err := valueFromAny(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return reef.NewList(elems...), nil
	case []rcode.Pair:
		entries := make([]reef.MapEntry, len(v))
		for i, pair := range v {
			key, err := valueFromAny(pair.Key)
			if err != nil {
				return nil, err
			}
			val, err := valueFromAny(pair.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = reef.MapEntry{Key: key, Value: val}
		}
		return reef.NewMap(entries...), nil
	case rcode.Ext:
		switch v.Type {
		case reef.ExtGeoJSON:
			return reef.NewGeoJSON(string(v.Data)), nil
		case reef.ExtHLL:
			return reef.NewHLL(v.Data), nil
		}
		return nil, fmt.Errorf("%w: unknown ext tag %#02x", ErrBadToken, v.Type)
	}
	return nil, fmt.Errorf("%w: unsupported payload %T", ErrBadToken, x)
}
