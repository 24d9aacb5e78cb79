package encode

import (
	"errors"
	"flag"
	"fmt"

	"github.com/coraldb/reef/cmd/reef/root"
	"github.com/coraldb/reef/path"
	"github.com/mccanne/charm"
	"go.uber.org/zap"
)

var Encode = &charm.Spec{
	Name:  "encode",
	Usage: "encode <path>",
	Short: "encode a path expression as a context token",
	Long: `
The encode command parses a path expression like ".book[*].price" and
prints the context token for it.  The token is the persistence form of
a context chain, e.g. for embedding in an index definition.`,
	New: New,
}

func init() {
	root.Reef.Add(Encode)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("encode: a single path argument is required")
	}
	logger, err := c.Logger()
	if err != nil {
		return err
	}
	chain, err := path.ParsePath(args[0])
	if err != nil {
		return err
	}
	token := chain.Token()
	logger.Info("encoded context chain",
		zap.Int("steps", len(chain)),
		zap.Int("token_length", len(token)))
	fmt.Println(token)
	return nil
}
