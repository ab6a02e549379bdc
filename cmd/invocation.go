package cmd

import (
	"errors"

	"github.com/masmgr/reauthor/internal/rebase"
)

// Invocation is the mode the process was started in.
type Invocation interface {
	run() error
}

// DriverInvocation is a normal command-line run.
type DriverInvocation struct {
	Args []string
}

func (d DriverInvocation) run() error {
	return App().Run(d.Args)
}

// CallbackInvocation is git running this program as its sequence editor on a todo file.
type CallbackInvocation struct {
	TodoPath    string
	ScriptPath  string
	TodoPattern string
}

func (c CallbackInvocation) run() error {
	cb := rebase.Callback{ScriptPath: c.ScriptPath, TodoPattern: c.TodoPattern}
	return cb.Apply(c.TodoPath)
}

// ParseInvocation picks the mode from the process arguments. A single argument matching
// the todo pattern is a callback; the script path is then taken from the environment.
func ParseInvocation(args []string, pattern string, getenv func(string) string) (Invocation, error) {
	if len(args) != 2 || isCommandName(args[1]) {
		return DriverInvocation{Args: args}, nil
	}

	ok, err := rebase.MatchTodoPath(pattern, args[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		return DriverInvocation{Args: args}, nil
	}

	scriptPath := getenv(rebase.ScriptEnv)
	if scriptPath == "" {
		return nil, errors.New("invoked on a rebase todo file but " + rebase.ScriptEnv + " is not set")
	}
	return CallbackInvocation{TodoPath: args[1], ScriptPath: scriptPath, TodoPattern: pattern}, nil
}

func isCommandName(arg string) bool {
	for _, cmd := range App().Commands {
		if cmd.HasName(arg) {
			return true
		}
	}
	return false
}
