// Package rebase makes git run a precomputed todo script through `git rebase -i`.
//
// The driver points the repository's sequence.editor at this program and starts the
// rebase. Git then runs the program again with the path of its todo file, and the
// Callback replaces that file with the script. The two processes share nothing but the
// filesystem.
package rebase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alessio/shellescape"

	"github.com/masmgr/reauthor/internal/git"
)

// ScriptEnv carries the absolute script path from the driver to the callback process.
const ScriptEnv = "REAUTHOR_SCRIPT"

const sequenceEditorKey = "sequence.editor"

var (
	// ErrConfigure is returned when git's sequence editor cannot be set.
	ErrConfigure = errors.New("failed to configure git sequence editor")
	// ErrRebaseFailed is returned when `git rebase` exits non-zero.
	ErrRebaseFailed = errors.New("git rebase failed")
	// ErrAlreadyTriggered is returned when Run is called twice on one driver.
	ErrAlreadyTriggered = errors.New("rebase already triggered")
)

// State tracks the progress of one driver run.
type State int

const (
	StateNotTriggered State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateNotTriggered:
		return "not-triggered"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a Driver.
type Options struct {
	GitBinary string
	// Executable is the program git invokes as its sequence editor.
	Executable string
	// Identity becomes the committer of the commits git replays before each amend.
	Identity git.Identity
	// RestoreEditor puts the previous sequence.editor value back after the rebase.
	RestoreEditor bool
	// Stdout and Stderr receive git's output while the rebase runs.
	Stdout io.Writer
	Stderr io.Writer
}

// Driver configures git and triggers the rebase.
type Driver struct {
	runner git.Runner
	opts   Options
	state  State
}

// NewDriver creates a driver. A nil runner uses git.ExecRunner.
func NewDriver(runner git.Runner, opts Options) *Driver {
	if runner == nil {
		runner = git.NewExecRunner()
	}
	if opts.GitBinary == "" {
		opts.GitBinary = "git"
	}
	return &Driver{runner: runner, opts: opts}
}

// State returns the current state.
func (d *Driver) State() State {
	return d.state
}

// Run configures the sequence editor in repoRoot and runs `git rebase -i --root`, blocking
// until git exits. scriptPath must already hold the complete script. Nothing is retried.
func (d *Driver) Run(ctx context.Context, repoRoot, scriptPath string) (err error) {
	if d.state != StateNotTriggered {
		return fmt.Errorf("%w (state %s)", ErrAlreadyTriggered, d.state)
	}

	absScript, err := filepath.Abs(scriptPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absScript); err != nil {
		return fmt.Errorf("script artifact not ready: %w", err)
	}

	restore, err := d.Configure(ctx, repoRoot)
	if err != nil {
		d.state = StateFailed
		return err
	}
	if d.opts.RestoreEditor {
		defer func() {
			if rerr := restore(ctx); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}()
	}

	d.state = StateInProgress
	if err := d.Trigger(ctx, repoRoot, absScript); err != nil {
		d.state = StateFailed
		return err
	}
	d.state = StateCompleted
	return nil
}

// Configure sets sequence.editor in the repository's local config to the executable.
// The returned function restores the value that was there before.
func (d *Driver) Configure(ctx context.Context, repoRoot string) (func(context.Context) error, error) {
	editor, err := d.editorCommand()
	if err != nil {
		return nil, err
	}

	previous, hadPrevious, err := d.currentEditor(ctx, repoRoot)
	if err != nil {
		return nil, err
	}

	if _, err := d.git(ctx, repoRoot, "config", "--local", sequenceEditorKey, editor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigure, err)
	}

	restore := func(ctx context.Context) error {
		var err error
		if hadPrevious {
			_, err = d.git(ctx, repoRoot, "config", "--local", sequenceEditorKey, previous)
		} else {
			_, err = d.git(ctx, repoRoot, "config", "--local", "--unset", sequenceEditorKey)
		}
		if err != nil {
			return fmt.Errorf("restore %s: %w", sequenceEditorKey, err)
		}
		return nil
	}
	return restore, nil
}

// Trigger starts `git rebase -i --root` in repoRoot and waits for it to exit.
// GIT_SEQUENCE_EDITOR outranks sequence.editor, so the environment names the editor too.
func (d *Driver) Trigger(ctx context.Context, repoRoot, absScript string) error {
	editor, err := d.editorCommand()
	if err != nil {
		return err
	}

	_, err = d.runner.Run(ctx, git.Command{
		Name:   d.opts.GitBinary,
		Args:   []string{"rebase", "--interactive", "--root"},
		Dir:    repoRoot,
		Env:    d.rebaseEnv(absScript, editor),
		Stdout: d.opts.Stdout,
		Stderr: d.opts.Stderr,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRebaseFailed, err)
	}
	return nil
}

func (d *Driver) rebaseEnv(absScript, editor string) []string {
	env := []string{
		ScriptEnv + "=" + absScript,
		"GIT_SEQUENCE_EDITOR=" + editor,
	}
	if d.opts.Identity.Name != "" {
		env = append(env, "GIT_COMMITTER_NAME="+d.opts.Identity.Name)
	}
	if d.opts.Identity.Email != "" {
		env = append(env, "GIT_COMMITTER_EMAIL="+d.opts.Identity.Email)
	}
	return env
}

// editorCommand returns the shell-quoted executable git should run as its sequence editor.
func (d *Driver) editorCommand() (string, error) {
	exe := d.opts.Executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrConfigure, err)
		}
	}
	return shellescape.Quote(exe), nil
}

// currentEditor reads the local sequence.editor. git exits 1 when the key is unset.
func (d *Driver) currentEditor(ctx context.Context, repoRoot string) (string, bool, error) {
	res, err := d.git(ctx, repoRoot, "config", "--local", "--get", sequenceEditorKey)
	if err == nil {
		return trimNewline(string(res.Stdout)), true, nil
	}

	var exitErr *git.ExitError
	if errors.As(err, &exitErr) && exitErr.Code == 1 {
		return "", false, nil
	}
	return "", false, fmt.Errorf("%w: %v", ErrConfigure, err)
}

func (d *Driver) git(ctx context.Context, repoRoot string, args ...string) (git.Result, error) {
	return d.runner.Run(ctx, git.Command{
		Name: d.opts.GitBinary,
		Args: append([]string{"-C", repoRoot}, args...),
	})
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
