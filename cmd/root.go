package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/config"
	"github.com/masmgr/reauthor/internal/git"
	"github.com/masmgr/reauthor/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "reauthor",
		Usage:   "Rewrite the author and committer of every commit in a Git repository",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ExtractCmd(),
			AmendCmd(),
			RewriteCmd(),
			PlanCmd(),
			InitCmd(),
			SequenceEditorCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Revision to walk back from (default: HEAD)",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "Record order (oldest, newest)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History reader backend (gogit, cli)",
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Path to the commit records file (default: <dataDir>/<repo>_commit_data.json)",
		},
	}
}

// Flags for commands that build a script
func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "author",
			Aliases: []string{"a"},
			Usage:   "New author and committer name",
		},
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "New author and committer email",
		},
		&cli.StringFlag{
			Name:    "script",
			Aliases: []string{"s"},
			Usage:   "Path to the rebase script artifact (default: <dataDir>/rebase_todo.txt)",
		},
		&cli.BoolFlag{
			Name:  "allow-empty-identity",
			Usage: "Accept a blank author name or email",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseOrderFlag parses a traversal order name.
func parseOrderFlag(s string) (git.TraversalOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "oldest", "oldest-first", "reverse":
		return git.OrderOldestFirst, nil
	case "newest", "newest-first":
		return git.OrderNewestFirst, nil
	default:
		return 0, fmt.Errorf("invalid order: %s (expected oldest or newest)", s)
	}
}

// parseBackendFlag parses a reader backend name.
func parseBackendFlag(s string) (git.ReaderBackend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gogit", "go-git":
		return git.BackendGoGit, nil
	case "cli", "git":
		return git.BackendGitCLI, nil
	default:
		return 0, fmt.Errorf("invalid backend: %s (expected gogit or cli)", s)
	}
}

// loadConfig loads configuration from file or defaults, then applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(c, cfg)
	return cfg, nil
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	if v := c.String("author"); v != "" {
		cfg.Identity.Name = v
	}
	if v := c.String("email"); v != "" {
		cfg.Identity.Email = v
	}
	if c.Bool("allow-empty-identity") {
		cfg.Identity.AllowEmpty = true
	}
	if v := c.String("script"); v != "" {
		cfg.Paths.Script = v
	}
	if v := c.String("branch"); v != "" {
		cfg.Reader.Branch = v
	}
	if v := c.String("order"); v != "" {
		cfg.Reader.Order = v
	}
	if v := c.String("backend"); v != "" {
		cfg.Reader.Backend = v
	}
	if v := c.String("format"); v != "" {
		cfg.Report.Format = v
	}
	if filters := c.StringSlice("author-filter"); len(filters) > 0 {
		cfg.Report.AuthorFilter = filters
	}
}

// Run executes the CLI application with the process arguments.
func Run() {
	os.Exit(Main(os.Args))
}

// Main decides the invocation mode once and runs it, returning the process exit code.
func Main(args []string) int {
	inv, err := ParseInvocation(args, todoPattern(), os.Getenv)
	if err == nil {
		err = inv.run()
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// todoPattern returns the configured todo file pattern. Git starts the callback inside the
// repository, so the default config search applies.
func todoPattern() string {
	cfg, err := config.LoadConfig("")
	if err != nil || cfg.Rebase.TodoPattern == "" {
		return config.DefaultConfig().Rebase.TodoPattern
	}
	return cfg.Rebase.TodoPattern
}
