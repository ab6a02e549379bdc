package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/git"
)

// PlanCmd returns the plan command, a dry run that prints the rebase script.
func PlanCmd() *cli.Command {
	flags := append(commonFlags(), identityFlags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Print the rebase script without touching the repository",
		Flags:   flags,
		Action:  planAction,
	}
}

func planAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	var records []git.CommitRecord
	if c.String("data") != "" {
		records, err = ctx.LoadRecords()
	} else {
		ctx.forceReplayOrder()
		records, err = ctx.ReadRecords(c.Context)
	}
	if err != nil {
		return err
	}

	script, err := ctx.BuildScript(records)
	if err != nil {
		return err
	}
	if script.Len() > 0 {
		fmt.Fprintln(ctx.Stdout, script.String())
	}
	fmt.Fprintf(ctx.Stderr, "%d commits, %d todo lines written to %s\n", len(records), script.Len(), ctx.Config.ScriptPath())
	return nil
}
