package main

import (
	"fmt"
	"os"

	_ "github.com/coraldb/reef/cmd/reef/compile"
	_ "github.com/coraldb/reef/cmd/reef/decode"
	_ "github.com/coraldb/reef/cmd/reef/encode"
	_ "github.com/coraldb/reef/cmd/reef/repl"
	"github.com/coraldb/reef/cmd/reef/root"
)

func main() {
	if _, err := root.Reef.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
