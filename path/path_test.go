package path_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/path"
	"github.com/coraldb/reef/rcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func unpackAny(t *testing.T, b []byte) any {
	t.Helper()
	u := rcode.NewUnpacker(b)
	v, err := u.Any()
	require.NoError(t, err)
	require.True(t, u.Done())
	return v
}

func bookPrices() path.Chain {
	return path.Chain{
		path.MapKey(reef.NewString("book")),
		path.AllChildren(),
		path.MapKey(reef.NewString("price")),
	}
}

func TestSelectEnvelope(t *testing.T) {
	envelope := path.Select(bookPrices(), path.LeafValue)
	top, ok := unpackAny(t, envelope).([]any)
	require.True(t, ok)
	require.Len(t, top, 3)
	assert.Equal(t, int64(0xfe), top[0])
	assert.Equal(t, []any{
		int64(path.StepMapKey), "book",
		int64(path.StepAllChildren), nil,
		int64(path.StepMapKey), "price",
	}, top[1])
	assert.Equal(t, int64(1), top[2])
}

func TestModifyEnvelope(t *testing.T) {
	mod := expr.Build(expr.Mul(expr.CurrentValue(), expr.Float(1.5)))
	envelope := path.Modify(bookPrices(), path.LeafValue, mod)
	top, ok := unpackAny(t, envelope).([]any)
	require.True(t, ok)
	require.Len(t, top, 4)
	assert.Equal(t, int64(0xfe), top[0])

	flags, ok := top[2].(int64)
	require.True(t, ok)
	assert.NotZero(t, flags&int64(path.Apply), "modify must force the apply bit")
	assert.NotZero(t, flags&int64(path.LeafValue), "caller flags must survive")

	packed, ok := top[3].([]byte)
	require.True(t, ok)
	assert.Equal(t, mod.Size(), len(packed))
	assert.Equal(t, mod.Bytes(), packed)
}

func TestEnvelopeArity(t *testing.T) {
	mod := expr.Build(expr.Add(expr.CurrentValue(), expr.Int(1)))
	chains := []path.Chain{
		{},
		{path.ListIndex(0)},
		bookPrices(),
		{path.FilteredChildren(expr.Build(expr.Gt(expr.CurrentValue(), expr.Int(10))))},
	}
	for _, chain := range chains {
		selected := unpackAny(t, path.Select(chain, path.MatchingTree)).([]any)
		assert.Len(t, selected, 3)
		require.IsType(t, []any{}, selected[1])
		assert.Len(t, selected[1], 2*len(chain))

		modified := unpackAny(t, path.Modify(chain, path.NoFail, mod)).([]any)
		assert.Len(t, modified, 4)
		require.IsType(t, []any{}, modified[1])
		assert.Len(t, modified[1], 2*len(chain))
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	chain := path.Chain{
		path.MapKey(reef.NewString("a")),
		path.FilteredChildren(expr.Build(expr.Lt(expr.CurrentIndex(), expr.Int(3)))),
	}
	require.Equal(t, path.Select(chain, path.MapKeys), path.Select(chain, path.MapKeys))
	mod := expr.Build(expr.Sub(expr.CurrentValue(), expr.Int(1)))
	require.Equal(t, path.Modify(chain, path.NoFail, mod), path.Modify(chain, path.NoFail, mod))
}

// Built chains and expressions are immutable, so distinct compilations
// may share them with no coordination and must still agree byte for
// byte.
func TestConcurrentCompilations(t *testing.T) {
	chain := path.Chain{
		path.MapKey(reef.NewString("book")),
		path.FilteredChildren(expr.Build(expr.Gt(expr.CurrentValue(), expr.Int(10)))),
	}
	mod := expr.Build(expr.Mul(expr.CurrentValue(), expr.Float(1.5)))
	wantSelect := path.Select(chain, path.LeafValue)
	wantModify := path.Modify(chain, path.NoFail, mod)
	wantToken := chain.Token()

	var group errgroup.Group
	for i := 0; i < 16; i++ {
		group.Go(func() error {
			for j := 0; j < 100; j++ {
				if !bytes.Equal(wantSelect, path.Select(chain, path.LeafValue)) {
					return errors.New("select compilation diverged")
				}
				if !bytes.Equal(wantModify, path.Modify(chain, path.NoFail, mod)) {
					return errors.New("modify compilation diverged")
				}
				if wantToken != chain.Token() {
					return errors.New("token encoding diverged")
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}

func TestFlagBits(t *testing.T) {
	// Wire contract; a changed bit breaks every deployed server.
	assert.Equal(t, path.Flags(0x00), path.MatchingTree)
	assert.Equal(t, path.Flags(0x01), path.LeafValue)
	assert.Equal(t, path.Flags(0x02), path.MapKeys)
	assert.Equal(t, path.Flags(0x04), path.Apply)
	assert.Equal(t, path.Flags(0x10), path.NoFail)
}

func TestStepIDs(t *testing.T) {
	// Wire contract, same as the flag bits.
	assert.Equal(t, path.StepID(0x00), path.StepMapKey)
	assert.Equal(t, path.StepID(0x01), path.StepMapValue)
	assert.Equal(t, path.StepID(0x02), path.StepListIndex)
	assert.Equal(t, path.StepID(0x03), path.StepListValue)
	assert.Equal(t, path.StepID(0x04), path.StepFilter)
	assert.Equal(t, path.StepID(0x05), path.StepAllChildren)
}

func TestChainString(t *testing.T) {
	pred := expr.Build(expr.Gt(expr.CurrentValue(), expr.Int(10)))
	chain := path.Chain{
		path.MapKey(reef.NewString("book")),
		path.AllChildren(),
		path.ListIndex(3),
		path.FilteredChildren(pred),
	}
	assert.Equal(t,
		`mapKey("book").allChildren().listIndex(3).filter(5 byte predicate)`,
		chain.String())
}
