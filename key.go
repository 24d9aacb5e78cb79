package reef

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/coraldb/reef/rcode"
)

// ErrKeyType is returned when a Value of a non-keyable kind is used to
// build a record key.  This is a validation error the caller can
// recover from, not a packing failure.
var ErrKeyType = errors.New("value kind cannot be used as a record key")

// IsKeyKind reports whether values of kind k may be used as record
// keys.  Only primitive scalars and byte strings qualify; collection,
// null, and server-opaque kinds (geo, HLL) do not.
func IsKeyKind(k Kind) bool {
	switch k {
	case KindBool, KindInt, KindFloat, KindString, KindBytes:
		return true
	}
	return false
}

// Key locates a record.  The digest is a stable 64-bit hash of the set
// name and the packed key value, computed once at construction.
type Key struct {
	Namespace string
	Set       string
	Value     Value

	digest uint64
}

// NewKey builds a record key, rejecting value kinds that the server
// will not accept as keys.
func NewKey(namespace, set string, v Value) (*Key, error) {
	if !IsKeyKind(v.Kind()) {
		return nil, fmt.Errorf("%s: %w", v.Kind(), ErrKeyType)
	}
	d := xxhash.New()
	d.WriteString(set)
	d.Write(rcode.Pack(v.Pack))
	return &Key{
		Namespace: namespace,
		Set:       set,
		Value:     v,
		digest:    d.Sum64(),
	}, nil
}

// Digest returns the key's stable 64-bit digest.
func (k *Key) Digest() uint64 { return k.digest }

func (k *Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Namespace, k.Set, k.Value)
}
