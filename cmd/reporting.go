package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/reauthor/internal/output"
)

// Flags for commands that print an extraction report
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of records to show (0: all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringSliceFlag{
			Name:  "author-filter",
			Usage: "Glob patterns on author email to show (can be specified multiple times)",
		},
	}
}

// ReportOptions creates OutputOptions from CLI flags. An unset format falls back to the config.
func ReportOptions(c *cli.Context) output.OutputOptions {
	opts := output.OutputOptions{
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
	}
	if f := c.String("format"); f != "" {
		opts.Format = getOutputFormat(f)
	}
	return opts
}
