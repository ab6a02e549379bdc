package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/rebase"
)

// SequenceEditorCmd returns the hidden command git can run as its sequence editor.
// It does the same work as the bare `reauthor <todo-file>` callback form.
func SequenceEditorCmd() *cli.Command {
	return &cli.Command{
		Name:      "sequence-editor",
		Usage:     "Replace a rebase todo file with the prepared script",
		ArgsUsage: "<todo-file>",
		Hidden:    true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "script",
				Aliases: []string{"s"},
				Usage:   "Path to the rebase script artifact",
				EnvVars: []string{rebase.ScriptEnv},
			},
		},
		Action: sequenceEditorAction,
	}
}

func sequenceEditorAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one todo file, got %d arguments", c.NArg())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	inv := CallbackInvocation{
		TodoPath:    c.Args().First(),
		ScriptPath:  cfg.ScriptPath(),
		TodoPattern: cfg.Rebase.TodoPattern,
	}
	return inv.run()
}
