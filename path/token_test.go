package path_test

import (
	"encoding/base64"
	"testing"

	"github.com/coraldb/reef"
	"github.com/coraldb/reef/expr"
	"github.com/coraldb/reef/path"
	"github.com/coraldb/reef/rcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		chain path.Chain
	}{
		{"empty", path.Chain{}},
		{"single map key", path.Chain{path.MapKey(reef.NewString("book"))}},
		{"list index", path.Chain{path.ListIndex(7)}},
		{"negative index", path.Chain{path.ListIndex(-2)}},
		{"list value", path.Chain{path.ListValue(reef.NewFloat(9.5))}},
		{"map value", path.Chain{path.MapValue(reef.NewBytes([]byte{1, 2, 3}))}},
		{"all children", path.Chain{path.AllChildren()}},
		{"nested collection payload", path.Chain{
			path.ListValue(reef.NewValue(map[string]any{
				"a": 1,
				"b": []any{true, nil, "x"},
			})),
		}},
		{"deep walk", path.Chain{
			path.MapKey(reef.NewString("a")),
			path.ListIndex(0),
			path.AllChildren(),
			path.ListValue(reef.NewList(reef.NewInt(1), reef.NewString("x"))),
		}},
		{"ext payloads", path.Chain{
			path.MapValue(reef.NewGeoJSON(`{"type":"Point","coordinates":[0,0]}`)),
			path.ListValue(reef.NewHLL([]byte{0x0c, 1, 2})),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			decoded, err := path.FromToken(c.chain.Token())
			require.NoError(t, err)
			require.Len(t, decoded, len(c.chain))
			for i := range c.chain {
				assert.Equal(t, c.chain[i].ID, decoded[i].ID)
				want := c.chain[i].Payload.(path.Literal).Value
				got, ok := decoded[i].Payload.(path.Literal)
				require.True(t, ok)
				assert.True(t, reef.Equal(want, got.Value),
					"step %d: want %s, got %s", i, want, got.Value)
			}
		})
	}
}

func TestFilterTokenRoundTrip(t *testing.T) {
	pred := expr.Build(expr.Gt(expr.CurrentValue(), expr.Int(10)))
	chain := path.Chain{
		path.MapKey(reef.NewString("scores")),
		path.FilteredChildren(pred),
	}
	decoded, err := path.FromToken(chain.Token())
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	assert.Equal(t, path.StepFilter, decoded[1].ID)
	filter, ok := decoded[1].Payload.(path.Filter)
	require.True(t, ok)
	assert.Equal(t, pred.Size(), filter.Pred.Size())
	assert.Equal(t, pred.Bytes(), filter.Pred.Bytes())
}

func TestTokenIsStable(t *testing.T) {
	chain := path.Chain{path.ListIndex(1)}
	assert.Equal(t, "kgIB", chain.Token())
	assert.Equal(t, chain.Token(), chain.Token())
}

func TestFromTokenErrors(t *testing.T) {
	pack := func(fn func(*rcode.Packer)) string {
		return base64.StdEncoding.EncodeToString(rcode.Pack(fn))
	}
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"empty", ""},
		{"not an array", pack(func(p *rcode.Packer) { p.PackInt(5) })},
		{"odd element count", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(1)
			p.PackInt(0)
		})},
		{"unknown step id", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(2)
			p.PackInt(0x3f)
			p.PackNil()
		})},
		{"truncated payload", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(2)
			p.PackInt(0)
		})},
		{"filter payload not a byte string", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(2)
			p.PackInt(int64(path.StepFilter))
			p.PackInt(7)
		})},
		{"unknown ext tag", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(2)
			p.PackInt(0)
			p.PackExt(0x33, []byte{1})
		})},
		{"trailing bytes", pack(func(p *rcode.Packer) {
			p.PackArrayHeader(0)
			p.PackInt(1)
		})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chain, err := path.FromToken(c.token)
			require.ErrorIs(t, err, path.ErrBadToken)
			assert.Nil(t, chain)
		})
	}
}
