package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/config"
	"github.com/masmgr/reauthor/internal/git"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config      *config.Config
	RepoPath    string
	RecordsPath string
	ReadOptions git.ReadOptions
	Runner      git.Runner
	// Executable is what git runs as its sequence editor. Empty means this program.
	Executable  string
	Stdout      io.Writer
	Stderr      io.Writer
}

// NewCommandContext creates a context from CLI flags.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return newCommandContext(cfg, c.String("repo"), c.String("data"), git.NewExecRunner())
}

func newCommandContext(cfg *config.Config, repoPath, recordsPath string, runner git.Runner) (*CommandContext, error) {
	if repoPath == "" {
		repoPath = "."
	}

	order, err := parseOrderFlag(cfg.Reader.Order)
	if err != nil {
		return nil, err
	}
	backend, err := parseBackendFlag(cfg.Reader.Backend)
	if err != nil {
		return nil, err
	}

	if recordsPath == "" {
		name, err := git.RecordsFileName(repoPath)
		if err != nil {
			return nil, err
		}
		recordsPath = filepath.Join(cfg.Paths.DataDir, name)
	}

	return &CommandContext{
		Config:      cfg,
		RepoPath:    repoPath,
		RecordsPath: recordsPath,
		ReadOptions: git.ReadOptions{
			RepoPath:  repoPath,
			Branch:    cfg.Reader.Branch,
			Order:     order,
			Backend:   backend,
			GitBinary: cfg.Rebase.GitBinary,
		},
		Runner: runner,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Identity returns the configured replacement identity.
func (ctx *CommandContext) Identity() git.Identity {
	return git.Identity{Name: ctx.Config.Identity.Name, Email: ctx.Config.Identity.Email}
}

// ReadRecords reads the commit records straight from the repository.
func (ctx *CommandContext) ReadRecords(c context.Context) ([]git.CommitRecord, error) {
	reader, err := git.NewRepositoryReader(ctx.ReadOptions, ctx.Runner)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return ctx.readFrom(c, reader)
}

func (ctx *CommandContext) readFrom(c context.Context, reader git.RepositoryReader) ([]git.CommitRecord, error) {
	records, err := reader.ReadRecords(c)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

// LoadRecords reads the records file written by extract.
func (ctx *CommandContext) LoadRecords() ([]git.CommitRecord, error) {
	records, err := git.LoadRecords(ctx.RecordsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no commit records at %s; run extract first", ctx.RecordsPath)
		}
		return nil, err
	}
	return records, nil
}

// PrintNoCommitsMessage prints a message when the repository has no commits.
func (ctx *CommandContext) PrintNoCommitsMessage() {
	color.New(color.FgYellow).Fprintln(ctx.Stderr, "No commits found.")
}
