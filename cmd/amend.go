package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/git"
	"github.com/masmgr/reauthor/internal/rebase"
	"github.com/masmgr/reauthor/internal/sequence"
)

// AmendCmd returns the amend command.
func AmendCmd() *cli.Command {
	flags := append(commonFlags(), identityFlags()...)

	return &cli.Command{
		Name:    "amend",
		Aliases: []string{"a"},
		Usage:   "Rewrite every commit listed in the records file with the new identity",
		Flags:   flags,
		Action:  amendAction,
	}
}

func amendAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := ctx.LoadRecords()
	if err != nil {
		return err
	}
	if err := ctx.Amend(c.Context, records); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}

// BuildScript writes the rebase script for records and returns it.
func (ctx *CommandContext) BuildScript(records []git.CommitRecord) (sequence.Script, error) {
	seq := sequence.New(ctx.Config.ScriptPath(), sequence.Options{
		AllowEmptyIdentity: ctx.Config.Identity.AllowEmpty,
	})
	script, err := seq.Run(records, ctx.Identity())
	if err != nil {
		return sequence.Script{}, fmt.Errorf("failed to build rebase script: %w", err)
	}
	return script, nil
}

// Amend writes the script for records and rebases the repository with it.
func (ctx *CommandContext) Amend(c context.Context, records []git.CommitRecord) error {
	if _, err := ctx.BuildScript(records); err != nil {
		return err
	}
	if len(records) == 0 {
		ctx.PrintNoCommitsMessage()
		return nil
	}

	root, err := git.RepositoryRoot(ctx.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	if err := ctx.VerifyRecords(c, root, records); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(ctx.Stderr, "Rewriting %d commits as %s\n", len(records), ctx.Identity())

	driver := rebase.NewDriver(ctx.Runner, rebase.Options{
		GitBinary:     ctx.Config.Rebase.GitBinary,
		Executable:    ctx.Executable,
		Identity:      ctx.Identity(),
		RestoreEditor: ctx.Config.Rebase.RestoreEditor,
		Stdout:        ctx.Stdout,
		Stderr:        ctx.Stderr,
	})
	if err := driver.Run(c, root, ctx.Config.ScriptPath()); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(ctx.Stderr, "Rebase %s\n", driver.State())
	return nil
}

// VerifyRecords refuses records that would not replay the checked-out history as-is.
// `git rebase --root` rewrites HEAD from its root commit, so the records must list exactly
// those commits, oldest first.
func (ctx *CommandContext) VerifyRecords(c context.Context, root string, records []git.CommitRecord) error {
	if err := git.CheckRevisionIsHead(root, ctx.ReadOptions.Branch); err != nil {
		return err
	}
	if err := git.VerifyRecords(c, root, records); err != nil {
		return fmt.Errorf("%w; re-run extract on the checked-out branch with --order oldest", err)
	}
	return nil
}
