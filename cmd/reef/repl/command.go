package repl

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/coraldb/reef/cmd/reef/root"
	"github.com/coraldb/reef/path"
	"github.com/mccanne/charm"
	"github.com/peterh/liner"
)

var Repl = &charm.Spec{
	Name:  "repl",
	Usage: "repl",
	Short: "interactively encode paths and decode tokens",
	Long: `
The repl command enters a read-eval-print loop.  A line starting with
"." or "[" is parsed as a path expression and printed as its context
token; any other line is decoded as a token and printed as its steps.
Exit with "quit" or end of input.`,
	New: New,
}

func init() {
	root.Reef.Add(Repl)
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
	if len(args) > 0 {
		return errors.New("repl takes no arguments")
	}
	if _, err := c.Logger(); err != nil {
		return err
	}
	l := liner.NewLiner()
	defer l.Close()
	l.SetMultiLineMode(true)
	for {
		line, err := l.Prompt("reef> ")
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		l.AppendHistory(line)
		c.eval(line)
	}
}

func (c *Command) eval(line string) {
	if line[0] == '.' || line[0] == '[' {
		chain, err := path.ParsePath(line)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(chain.Token())
		return
	}
	chain, err := c.cache.FromToken(line)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(chain) == 0 {
		fmt.Println("(empty chain)")
		return
	}
	for i, step := range chain {
		fmt.Printf("%d: %s\n", i, step)
	}
}
