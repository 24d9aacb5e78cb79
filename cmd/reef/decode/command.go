package decode

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/coraldb/reef/cmd/reef/root"
	"github.com/coraldb/reef/path"
	"github.com/mccanne/charm"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var Decode = &charm.Spec{
	Name:  "decode",
	Usage: "decode [token ...]",
	Short: "decode context tokens into readable walks",
	Long: `
The decode command decodes each context token given as an argument and
prints its steps, one per line.  With no arguments it reads tokens from
stdin, one per line.  A malformed token does not stop the batch; the
failures are reported together at the end.`,
	New: New,
}

func init() {
	root.Reef.Add(Decode)
}

type Command struct {
	*root.Command
	cache *path.DecodeCache
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	cache, err := path.NewDecodeCache(128, nil)
	if err != nil {
		return nil, err
	}
	return &Command{Command: parent.(*root.Command), cache: cache}, nil
}

func (c *Command) Run(args []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}
	tokens := args
	if len(tokens) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				tokens = append(tokens, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	var errs error
	for _, token := range tokens {
		chain, err := c.cache.FromToken(token)
		if err != nil {
			logger.Warn("token failed to decode", zap.String("token", token))
			errs = multierr.Append(errs, err)
			continue
		}
		if len(tokens) > 1 {
			fmt.Printf("%s:\n", token)
		}
		printChain(chain)
	}
	return errs
}

func printChain(chain path.Chain) {
	if len(chain) == 0 {
		fmt.Println("(empty chain)")
		return
	}
	for i, step := range chain {
		fmt.Printf("%d: %s\n", i, step)
	}
}
