package main

import (
	"github.com/masmgr/reauthor/cmd"
)

func main() {
	// Git runs this binary as its sequence editor during a rewrite, so the callback form
	// `reauthor <path>/git-rebase-todo` is decided before the subcommands are parsed.
	cmd.Run()
}
