package rewrite

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/masmgr/reauthor/internal/git"
)

// Verb is a rebase todo command.
type Verb string

const (
	VerbPick Verb = "pick"
	VerbExec Verb = "exec"
)

// Select keeps one commit in place during the rebase.
type Select struct {
	CommitID   string
	Annotation string // informational only, git ignores it
}

// String renders the todo line, e.g. "pick 20aebad init commit".
func (s Select) String() string {
	return string(VerbPick) + " " + s.CommitID + " " + s.Annotation
}

// Amend rewrites the identity and dates of the commit that was just picked.
type Amend struct {
	Author    git.Identity
	Committer git.Identity
	Date      string // git date format, see FormatGitDate
}

// Env returns the committer overrides as KEY=value pairs.
func (a Amend) Env() []string {
	return []string{
		"GIT_COMMITTER_NAME=" + a.Committer.Name,
		"GIT_COMMITTER_EMAIL=" + a.Committer.Email,
		"GIT_COMMITTER_DATE=" + a.Date,
	}
}

// Argv returns the amend command. --no-edit keeps the message and never opens an editor.
func (a Amend) Argv() []string {
	return []string{
		"git", "commit", "--amend", "--no-edit", "--allow-empty",
		"--author=" + a.Author.String(),
		"--date=" + a.Date,
	}
}

// String renders the exec line with every value quoted for a POSIX shell.
func (a Amend) String() string {
	parts := make([]string, 0, 1+len(a.Env())+len(a.Argv()))
	parts = append(parts, string(VerbExec))
	for _, kv := range a.Env() {
		key, value, _ := strings.Cut(kv, "=")
		parts = append(parts, key+"="+shellescape.Quote(value))
	}
	parts = append(parts, shellescape.QuoteCommand(a.Argv()))
	return strings.Join(parts, " ")
}

// InstructionPair is the select/amend couple produced for one commit record.
type InstructionPair struct {
	Select Select
	Amend  Amend
}

// Lines returns the two todo lines, select first.
func (p InstructionPair) Lines() [2]string {
	return [2]string{p.Select.String(), p.Amend.String()}
}
