//nolint:wrapcheck
package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/logsift"
	"github.com/farcloser/logsift/internal/output"
)

func textCommand() *cli.Command {
	return scanCommand(
		"text",
		"Print warning and error lines, skipping summary lines, tagged with the file they belong to",
		logsift.VariantSuppress,
		logsift.DefaultTextPath,
	)
}

func grepCommand() *cli.Command {
	return scanCommand(
		"grep",
		"Print every line containing \"error\" or \"warning\" as written, tagged with the file they belong to",
		logsift.VariantPlain,
		logsift.DefaultGrepPath,
	)
}

func scanCommand(name, usage string, variant logsift.Variant, defaultPath string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[file] (default: " + defaultPath + ")",
		Flags: []cli.Flag{
			formatFlag(),
			encodingFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := inputPath(cmd, defaultPath)
			if err != nil {
				return err
			}

			formatName := cmd.String("format")
			if err = checkFormat(formatName); err != nil {
				return err
			}

			opts, err := textOptions(cmd, variant)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer

			excerpts, err := logsift.ExtractTextFile(path, opts)
			if err != nil {
				return diagnose(out, err)
			}

			if formatName == plainFormat {
				return output.WriteExcerpts(out, excerpts)
			}

			return output.Print(out, formatName, output.ExcerptsToData(excerpts))
		},
	}
}
