package op_test

import (
	"testing"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/op"
	"github.com/coraldb/reef/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOperation(t *testing.T) {
	chain := path.Chain{
		path.MapKey(reef.NewString("book")),
		path.AllChildren(),
	}
	o := op.Select("inventory", chain, path.LeafValue)
	assert.Equal(t, op.CDTRead, o.Code)
	assert.Equal(t, "inventory", o.Bin)
	assert.False(t, o.IsWrite())
	assert.Equal(t, "cdt-read(inventory)", o.String())

	payload, ok := o.Payload.(reef.BytesValue)
	require.True(t, ok)
	assert.Equal(t, path.Select(chain, path.LeafValue), []byte(payload))
}

func TestApplyOperation(t *testing.T) {
	chain := path.Chain{path.AllChildren()}
	mod := expr.Build(expr.Add(expr.CurrentValue(), expr.Int(1)))
	o := op.Apply("scores", chain, path.NoFail, mod)
	assert.Equal(t, op.CDTModify, o.Code)
	assert.True(t, o.IsWrite())
	assert.Equal(t, "cdt-modify(scores)", o.String())

	payload, ok := o.Payload.(reef.BytesValue)
	require.True(t, ok)
	assert.Equal(t, path.Modify(chain, path.NoFail, mod), []byte(payload))
}

func TestOperationCodes(t *testing.T) {
	// Wire contract.
	assert.Equal(t, op.Code(3), op.CDTRead)
	assert.Equal(t, op.Code(4), op.CDTModify)
}
