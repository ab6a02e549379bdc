package cmd

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/config"
	"github.com/masmgr/reauthor/internal/git"
	"github.com/masmgr/reauthor/internal/output"
)

func TestParseOrderFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    git.TraversalOrder
		wantErr bool
	}{
		{name: "DefaultOldest", input: "", want: git.OrderOldestFirst},
		{name: "Oldest", input: "oldest", want: git.OrderOldestFirst},
		{name: "ReverseAlias", input: "reverse", want: git.OrderOldestFirst},
		{name: "Newest", input: "Newest", want: git.OrderNewestFirst},
		{name: "Invalid", input: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderFlag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseOrderFlag(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBackendFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    git.ReaderBackend
		wantErr bool
	}{
		{name: "Default", input: "", want: git.BackendGoGit},
		{name: "GoGit", input: "gogit", want: git.BackendGoGit},
		{name: "CLI", input: "cli", want: git.BackendGitCLI},
		{name: "GitAlias", input: "git", want: git.BackendGitCLI},
		{name: "Invalid", input: "libgit2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBackendFlag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseBackendFlag(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func newFlagContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("Apply(%v): %v", f.Names(), err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cli.NewContext(App(), set, nil)
}

func TestApplyFlagOverrides(t *testing.T) {
	flags := append(append(commonFlags(), identityFlags()...), reportFlags()...)
	c := newFlagContext(t, flags,
		"--author", "New Author",
		"--email", "new@example.com",
		"--script", "/tmp/todo.txt",
		"--order", "newest",
		"--backend", "cli",
		"--branch", "main",
		"--format", "json",
		"--author-filter", "*@corp.io",
		"--author-filter", "bot@*",
		"--allow-empty-identity",
	)

	cfg := config.DefaultConfig()
	applyFlagOverrides(c, cfg)

	want := config.DefaultConfig()
	want.Identity = config.IdentityConfig{Name: "New Author", Email: "new@example.com", AllowEmpty: true}
	want.Paths.Script = "/tmp/todo.txt"
	want.Reader = config.ReaderConfig{Backend: "cli", Order: "newest", Branch: "main"}
	want.Report = config.ReportConfig{Format: "json", AuthorFilter: []string{"*@corp.io", "bot@*"}}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFlagOverrides_UnsetFlagsKeepConfig(t *testing.T) {
	c := newFlagContext(t, commonFlags())

	cfg := config.DefaultConfig()
	cfg.Identity.Name = "From Config"
	cfg.Reader.Order = "newest"
	applyFlagOverrides(c, cfg)

	if cfg.Identity.Name != "From Config" {
		t.Errorf("Identity.Name = %q, want %q", cfg.Identity.Name, "From Config")
	}
	if cfg.Reader.Order != "newest" {
		t.Errorf("Reader.Order = %q, want %q", cfg.Reader.Order, "newest")
	}
}
