package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/git"
	"github.com/masmgr/reauthor/internal/output"
)

// ExtractCmd returns the extract command.
func ExtractCmd() *cli.Command {
	flags := append(commonFlags(), reportFlags()...)

	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"x"},
		Usage:   "Read the commit history and save it as a records file",
		Flags:   flags,
		Action:  extractAction,
	}
}

func extractAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := ctx.Extract(c.Context)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ctx.PrintNoCommitsMessage()
	}

	if err := writeRecordsReport(ctx, records, ReportOptions(c)); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}

// Extract reads the history and saves it to the records file.
func (ctx *CommandContext) Extract(c context.Context) ([]git.CommitRecord, error) {
	reader, err := git.NewRepositoryReader(ctx.ReadOptions, ctx.Runner)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return ctx.extractFrom(c, reader)
}

func (ctx *CommandContext) extractFrom(c context.Context, reader git.RepositoryReader) ([]git.CommitRecord, error) {
	color.New(color.FgGreen).Fprintf(ctx.Stderr, "Reading %v repo\n", ctx.RepoPath)

	records, err := ctx.readFrom(c, reader)
	if err != nil {
		return nil, err
	}
	if err := git.SaveRecords(records, ctx.RecordsPath); err != nil {
		return nil, fmt.Errorf("failed to save commit records: %w", err)
	}

	color.New(color.FgGreen).Fprintf(ctx.Stderr, "Saved %d commit records to %s\n", len(records), ctx.RecordsPath)
	return records, nil
}

// writeRecordsReport renders the records, after the author filter, in the requested format.
func writeRecordsReport(ctx *CommandContext, records []git.CommitRecord, opts output.OutputOptions) error {
	shown, err := git.FilterByAuthorEmail(records, ctx.Config.Report.AuthorFilter)
	if err != nil {
		return err
	}

	report := &output.RecordsReport{
		RepoPath:    ctx.RepoPath,
		Branch:      ctx.ReadOptions.Branch,
		Order:       ctx.ReadOptions.Order,
		GeneratedAt: time.Now(),
		Records:     shown,
		Total:       len(records),
	}
	if opts.Format == "" {
		opts.Format = getOutputFormat(ctx.Config.Report.Format)
	}
	return output.NewRecordReportWriter(opts.Format).Write(report, opts)
}
