//nolint:wrapcheck
package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/logsift"
	"github.com/farcloser/logsift/internal/output"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Print error-severity messages from an ESLint JSON report, grouped by file",
		ArgsUsage: "[report.json] (default: " + logsift.DefaultLintPath + ")",
		Flags: []cli.Flag{
			formatFlag(),
			encodingFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := inputPath(cmd, logsift.DefaultLintPath)
			if err != nil {
				return err
			}

			formatName := cmd.String("format")
			if err = checkFormat(formatName); err != nil {
				return err
			}

			opts, err := lintOptions(cmd)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer

			entries, err := logsift.ExtractLintFile(path, opts)
			if err != nil {
				return diagnose(out, err)
			}

			if formatName == plainFormat {
				if err := output.WriteEntries(out, entries); err != nil {
					return diagnose(out, err)
				}

				return nil
			}

			data, scanErr := output.EntriesToData(entries)
			if len(data) > 0 || scanErr == nil {
				if err := output.Print(out, formatName, data); err != nil {
					return err
				}
			}

			if scanErr != nil {
				return diagnose(out, scanErr)
			}

			return nil
		},
	}
}
