// Package sequence turns an ordered list of commit records into a rebase todo script.
package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/masmgr/reauthor/internal/git"
	"github.com/masmgr/reauthor/internal/rewrite"
)

// Options controls script assembly.
type Options struct {
	// AllowEmptyIdentity skips the up-front check on the new name and email.
	AllowEmptyIdentity bool
}

// Script is an ordered rebase todo list: for record i, Lines[2i] is its pick and
// Lines[2i+1] its amend.
type Script struct {
	Lines []string
}

// String joins the lines with a single newline and no trailing terminator.
func (s Script) String() string {
	return strings.Join(s.Lines, "\n")
}

// Len returns the number of todo lines.
func (s Script) Len() int {
	return len(s.Lines)
}

// Build plans every record in order. It stops at the first record that cannot be planned.
func Build(records []git.CommitRecord, identity git.Identity, opts Options) (Script, error) {
	if !opts.AllowEmptyIdentity && identity.IsEmpty() {
		return Script{}, rewrite.ErrEmptyIdentity
	}

	lines := make([]string, 0, 2*len(records))
	for i, record := range records {
		pair, err := rewrite.Plan(record, identity)
		if err != nil {
			return Script{}, fmt.Errorf("record %d: %w", i, err)
		}
		pl := pair.Lines()
		lines = append(lines, pl[0], pl[1])
	}

	return Script{Lines: lines}, nil
}

// Write replaces the file at path with the script. The content is written to a temporary
// file in the same directory, synced, and renamed over path, so readers never see a partial
// script.
func Write(path string, script Script) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create script directory: %w", err)
		}
	}
	if err := renameio.WriteFile(path, []byte(script.String()), 0o644); err != nil {
		return fmt.Errorf("write script %s: %w", path, err)
	}
	return nil
}

// Read returns the raw script content stored at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script %s: %w", path, err)
	}
	return string(data), nil
}

// Sequencer builds and persists the script for a fixed artifact path.
type Sequencer struct {
	scriptPath string
	opts       Options
}

// New creates a sequencer writing to scriptPath.
func New(scriptPath string, opts Options) *Sequencer {
	return &Sequencer{scriptPath: scriptPath, opts: opts}
}

// Run builds the script and writes it. Nothing is written when planning fails.
func (s *Sequencer) Run(records []git.CommitRecord, identity git.Identity) (Script, error) {
	script, err := Build(records, identity, s.opts)
	if err != nil {
		return Script{}, err
	}
	if err := Write(s.scriptPath, script); err != nil {
		return Script{}, err
	}
	return script, nil
}
