package rebase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/reauthor/internal/sequence"
)

// DefaultTodoPattern matches the todo file git hands to its sequence editor.
const DefaultTodoPattern = "**/git-rebase-todo"

// ErrUnexpectedTodoPath is returned when the callback is given a path that is not a todo file.
var ErrUnexpectedTodoPath = errors.New("unexpected rebase todo path")

// MatchTodoPath reports whether path matches the doublestar pattern.
// Paths are compared slash-separated and without a volume or leading slash.
func MatchTodoPath(pattern, path string) (bool, error) {
	if pattern == "" {
		pattern = DefaultTodoPattern
	}
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")

	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		return false, fmt.Errorf("invalid todo pattern %q: %w", pattern, err)
	}
	return ok, nil
}

// Callback stands in for the editor git opens on the rebase todo list.
type Callback struct {
	ScriptPath  string
	TodoPattern string
}

// Apply overwrites todoPath with the script content. The todo file keeps its permissions.
func (c Callback) Apply(todoPath string) error {
	ok, err := MatchTodoPath(c.TodoPattern, todoPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnexpectedTodoPath, todoPath)
	}

	if c.ScriptPath == "" {
		return fmt.Errorf("no script path: %s is not set", ScriptEnv)
	}
	script, err := sequence.Read(c.ScriptPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(todoPath)
	if err != nil {
		return fmt.Errorf("stat todo file: %w", err)
	}
	if err := os.WriteFile(todoPath, []byte(script), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	return nil
}
