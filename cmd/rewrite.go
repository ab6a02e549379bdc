package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/git"
)

// RewriteCmd returns the rewrite command, which runs extract and amend back to back.
func RewriteCmd() *cli.Command {
	flags := append(commonFlags(), identityFlags()...)

	return &cli.Command{
		Name:    "rewrite",
		Aliases: []string{"xa"},
		Usage:   "Extract the history and rewrite it with the new identity",
		Flags:   flags,
		Action:  rewriteAction,
	}
}

func rewriteAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	ctx.forceReplayOrder()

	start := time.Now()
	records, err := ctx.Extract(c.Context)
	if err != nil {
		return err
	}
	if err := ctx.Amend(c.Context, records); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}

// forceReplayOrder reads oldest first regardless of --order, since the records feed a rebase.
func (ctx *CommandContext) forceReplayOrder() {
	if ctx.ReadOptions.Order != git.OrderOldestFirst {
		color.New(color.FgYellow).Fprintf(ctx.Stderr, "Ignoring --order %s: a rewrite replays commits oldest first\n", ctx.ReadOptions.Order)
		ctx.ReadOptions.Order = git.OrderOldestFirst
	}
}
