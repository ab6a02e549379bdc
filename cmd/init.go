package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/config"
)

// InitCmd returns the init command, which writes the effective configuration to a file.
func InitCmd() *cli.Command {
	flags := append(commonFlags(), identityFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Configuration file to write (.json or .toml)",
			Value:   ".reauthor.json",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite an existing configuration file",
		},
	)

	return &cli.Command{
		Name:   "init",
		Usage:  "Write a configuration file from the current defaults and flags",
		Flags:  flags,
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return writeConfigFile(cfg, c.String("output"), c.Bool("force"))
}

func writeConfigFile(cfg *config.Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "Wrote configuration to %s\n", path)
	return nil
}
