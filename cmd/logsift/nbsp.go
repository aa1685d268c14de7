//nolint:wrapcheck
package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/logsift/internal/nbsp"
)

const defaultNBSPPath = "src/pages/DailyChallenge.tsx"

func nbspCommand() *cli.Command {
	return &cli.Command{
		Name:      "nbsp",
		Usage:     "Replace non-breaking spaces with plain spaces in a UTF-8 file, in place",
		ArgsUsage: "[file] (default: " + defaultNBSPPath + ")",
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := inputPath(cmd, defaultNBSPPath)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer

			outcome, _, err := nbsp.Fix(path)
			if err != nil {
				return diagnose(out, err)
			}

			if outcome == nbsp.Replaced {
				_, err = fmt.Fprintln(out, "Found NBSP, replacing...\nReplaced.")
			} else {
				_, err = fmt.Fprintln(out, "No NBSP found.")
			}

			return err
		},
	}
}
