package compile

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"

	"github.com/coraldb/reef/cmd/reef/root"
	"github.com/coraldb/reef/path"
	"github.com/mccanne/charm"
	"go.uber.org/zap"
)

var Compile = &charm.Spec{
	Name:  "compile",
	Usage: "compile [-return kind] [-nofail] <path>",
	Short: "compile a path expression into a select envelope",
	Long: `
The compile command parses a path expression like ".book[*].price",
compiles the select envelope for it, and prints the envelope as hex.
The -return flag picks what the server returns for each match: the
matching subtree (tree), the value itself (leaf), the map keys (keys),
or key-value pairs (kv).`,
	New: New,
}

func init() {
	root.Reef.Add(Compile)
}

type Command struct {
	*root.Command
	ret    returnFlag
	noFail bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	c.ret.kind = "tree"
	f.Var(&c.ret, "return", "what each match returns (tree, leaf, keys, kv)")
	f.BoolVar(&c.noFail, "nofail", false, "skip type mismatches instead of failing")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("compile: a single path argument is required")
	}
	logger, err := c.Logger()
	if err != nil {
		return err
	}
	chain, err := path.ParsePath(args[0])
	if err != nil {
		return err
	}
	flags := c.ret.flags()
	if c.noFail {
		flags |= path.NoFail
	}
	envelope := path.Select(chain, flags)
	logger.Info("compiled select envelope",
		zap.Int("steps", len(chain)),
		zap.Int("bytes", len(envelope)))
	fmt.Println(hex.EncodeToString(envelope))
	return nil
}
