//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/logsift/internal/pattern"
)

func patternsCommand() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Usage:     "Print number and star triangles for each size, to check expected exercise output",
		ArgsUsage: "[n...] (default: 3 5)",
		Action: func(_ context.Context, cmd *cli.Command) error {
			sizes := []int{3, 5}

			if cmd.NArg() > 0 {
				sizes = sizes[:0]

				for _, arg := range cmd.Args().Slice() {
					size, err := strconv.Atoi(arg)
					if err != nil {
						return fmt.Errorf("invalid size %q: %w", arg, err)
					}

					if err := pattern.Validate(size); err != nil {
						return err
					}

					sizes = append(sizes, size)
				}
			}

			return printPatterns(cmd.Root().Writer, sizes)
		},
	}
}

func printPatterns(out io.Writer, sizes []int) error {
	var builder strings.Builder

	for idx, size := range sizes {
		if idx > 0 {
			builder.WriteString("\n" + strings.Repeat("=", 50) + "\n")
		}

		fmt.Fprintf(&builder, "Testing with n=%d:\n", size)

		for shapeIdx, shape := range pattern.Shapes() {
			if shapeIdx > 0 {
				builder.WriteString("\n")
			}

			fmt.Fprintf(&builder, "=== %s for n=%d ===\n", shape.Title, size)

			for _, row := range shape.Rows(size) {
				builder.WriteString(row + "\n")
			}
		}
	}

	_, err := io.WriteString(out, builder.String())

	return err
}
