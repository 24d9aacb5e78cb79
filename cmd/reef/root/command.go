package root

import (
	"flag"
	"fmt"

	"github.com/coraldb/reef/cli"
	"github.com/coraldb/reef/cli/logflags"
	"github.com/mccanne/charm"
	"go.uber.org/zap"
)

var Reef = &charm.Spec{
	Name:  "reef",
	Usage: "reef <command> [options] [arguments...]",
	Short: "compile and inspect CoralDB path operations",
	Long: `
reef is a command-line tool for working with the CoralDB path compiler.
It compiles path expressions into the operation envelopes the collection
engine decodes, round-trips context chains through persistence tokens,
and turns tokens back into readable walks.`,
	New: New,
}

func init() {
	Reef.Add(charm.Help)
}

type Command struct {
	logflags    logflags.Flags
	logger      *zap.Logger
	showVersion bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.logflags.SetFlags(f)
	f.BoolVar(&c.showVersion, "version", false, "print version and exit")
	return c, nil
}

// Logger opens the sink named by the -log.* flags.  Subcommands call
// it at the top of Run; repeated calls return the same logger.
func (c *Command) Logger() (*zap.Logger, error) {
	if c.logger == nil {
		logger, err := c.logflags.Open()
		if err != nil {
			return nil, err
		}
		c.logger = logger
	}
	return c.logger, nil
}

func (c *Command) Run(args []string) error {
	if c.showVersion {
		fmt.Printf("Version: %s\n", cli.Version())
		return nil
	}
	if len(args) == 0 {
		return Reef.Exec(c, []string{"help"})
	}
	return charm.ErrNoRun
}
