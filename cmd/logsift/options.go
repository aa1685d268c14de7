//nolint:wrapcheck
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/logsift"
	"github.com/farcloser/logsift/internal/config"
	"github.com/farcloser/logsift/internal/decode"
)

const plainFormat = "plain"

var errTooManyArgs = errors.New("expected at most one argument: input file path")

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: plain, console, json, markdown",
		Value:   plainFormat,
	}
}

func encodingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "Comma-separated encodings to try in order: utf-8, utf-16 (default depends on the command)",
	}
}

// inputPath returns the single optional argument, or fallback.
func inputPath(cmd *cli.Command, fallback string) (string, error) {
	switch cmd.NArg() {
	case 0:
		return fallback, nil
	case 1:
		return cmd.Args().First(), nil
	default:
		return "", fmt.Errorf("%w: got %d", errTooManyArgs, cmd.NArg())
	}
}

// checkFormat rejects unknown output formats before any input is read.
func checkFormat(name string) error {
	if name == plainFormat {
		return nil
	}

	_, err := format.GetFormatter(name)

	return err
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	return config.Load(cmd.Root().String("config"))
}

// encodings resolves the --encoding flag, falling back to the config list, then to defaults.
func encodings(cmd *cli.Command, configured []string, defaults []decode.Encoding) ([]decode.Encoding, error) {
	if raw := cmd.String("encoding"); raw != "" {
		resolved, err := decode.LookupAll(strings.Split(raw, ","))
		if err == nil && len(resolved) == 0 {
			err = fmt.Errorf("--encoding: %w", decode.ErrNoCandidates)
		}

		return resolved, err
	}

	if len(configured) > 0 {
		return decode.LookupAll(configured)
	}

	return defaults, nil
}

func textOptions(cmd *cli.Command, variant logsift.Variant) (logsift.TextOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return logsift.TextOptions{}, err
	}

	scanner := cfg.Text
	if variant == logsift.VariantPlain {
		scanner = cfg.Grep
	}

	opts := logsift.DefaultTextOptions(variant)

	if len(scanner.Suffixes) > 0 {
		opts.Rules.Suffixes = scanner.Suffixes
	}

	if len(scanner.Fragments) > 0 {
		opts.Rules.Fragments = scanner.Fragments
	}

	if len(scanner.Suppress) > 0 {
		opts.Rules.Suppress = scanner.Suppress
	}

	opts.Encodings, err = encodings(cmd, scanner.Encodings, opts.Encodings)
	if err != nil {
		return logsift.TextOptions{}, err
	}

	return opts, nil
}

func lintOptions(cmd *cli.Command) (logsift.LintOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return logsift.LintOptions{}, err
	}

	opts := logsift.DefaultLintOptions()

	opts.Encodings, err = encodings(cmd, cfg.Lint.Encodings, opts.Encodings)
	if err != nil {
		return logsift.LintOptions{}, err
	}

	return opts, nil
}

// diagnose prints a failure the way the extractor reports it: on stdout, without failing the run.
func diagnose(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Error: %v\n", err)

	return werr
}
