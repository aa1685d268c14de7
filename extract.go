package logsift

import (
	"iter"
	"log/slog"

	"github.com/farcloser/logsift/internal/decode"
	"github.com/farcloser/logsift/internal/lint"
	"github.com/farcloser/logsift/internal/textlog"
)

// Excerpt is a problem line tagged with the file it belongs to.
type Excerpt = textlog.Excerpt

// Entry is a file header or an error message from an ESLint report.
type Entry = lint.Entry

// ExtractText decodes data and returns a lazy sequence of problem lines.
// Decoding happens up front, so an undecodable input fails before anything is yielded.
func ExtractText(data []byte, opts TextOptions) (iter.Seq[Excerpt], error) {
	text, enc, err := decode.Text(data, opts.Encodings)
	if err != nil {
		return nil, err
	}

	slog.Debug("logsift.ExtractText", "encoding", string(enc), "bytes", len(data))

	return opts.Rules.Scan(textlog.Lines(text)), nil
}

// ExtractTextFile reads path and calls ExtractText.
func ExtractTextFile(path string, opts TextOptions) (iter.Seq[Excerpt], error) {
	data, err := decode.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ExtractText(data, opts)
}

// ExtractLint decodes and parses an ESLint JSON report, returning a lazy sequence of entries.
// Each encoding is tried until one yields a parseable report.
func ExtractLint(data []byte, opts LintOptions) (iter.Seq2[Entry, error], error) {
	results, enc, err := decode.Try(data, opts.Encodings, lint.Parse)
	if err != nil {
		return nil, err
	}

	slog.Debug("logsift.ExtractLint", "encoding", string(enc), "results", len(results))

	return lint.Scan(results), nil
}

// ExtractLintFile reads path and calls ExtractLint.
func ExtractLintFile(path string, opts LintOptions) (iter.Seq2[Entry, error], error) {
	data, err := decode.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ExtractLint(data, opts)
}
