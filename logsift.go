package logsift

import (
	"errors"
	"fmt"
	"strings"

	"github.com/farcloser/logsift/internal/decode"
	"github.com/farcloser/logsift/internal/textlog"
)

/*
Usage:

opts := logsift.DefaultTextOptions(logsift.VariantSuppress)
excerpts, err := logsift.ExtractTextFile("lint_final_6.txt", opts)
if err != nil {
    fmt.Println(err)
    return
}
for excerpt := range excerpts {
    fmt.Printf("File: %s | %s\n", excerpt.File, excerpt.Line)
}

// ESLint JSON report
entries, err := logsift.ExtractLintFile("components_lint.json", logsift.DefaultLintOptions())
for entry, err := range entries {
    if err != nil {
        break
    }
    fmt.Println(entry.File, entry.Line, entry.Message)
}

*/

// Default input paths, relative to the working directory.
const (
	DefaultTextPath = "lint_final_6.txt"
	DefaultGrepPath = "exam_lint_v2.txt"
	DefaultLintPath = "components_lint.json"
)

// Variant selects the text-log heuristic.
type Variant int

const (
	// VariantSuppress folds case when looking for problems and drops summary lines.
	VariantSuppress Variant = iota
	// VariantPlain matches "error" and "warning" as written and keeps every match.
	VariantPlain
)

var errUnknownVariant = errors.New("unknown variant")

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	default:
		return "suppress"
	}
}

// ParseVariant converts a variant name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "suppress", "":
		return VariantSuppress, nil
	case "plain":
		return VariantPlain, nil
	default:
		return 0, fmt.Errorf("%w %q (expected suppress or plain)", errUnknownVariant, s)
	}
}

// TextOptions configures ExtractText.
type TextOptions struct {
	Rules     textlog.Rules
	Encodings []decode.Encoding
}

// DefaultTextOptions returns the heuristic and encoding order for a variant.
func DefaultTextOptions(variant Variant) TextOptions {
	if variant == VariantPlain {
		return TextOptions{
			Rules: textlog.Rules{
				Suffixes:  []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"},
				Fragments: []string{"src", "D:"},
				Matching:  textlog.MatchExact,
			},
			Encodings: []decode.Encoding{decode.UTF8, decode.UTF16},
		}
	}

	return TextOptions{
		Rules: textlog.Rules{
			Suffixes:  []string{".ts", ".tsx"},
			Fragments: []string{"src", "D:"},
			Suppress:  []string{"Total", "scan"},
			Matching:  textlog.MatchFolded,
		},
		Encodings: []decode.Encoding{decode.UTF16, decode.UTF8},
	}
}

// LintOptions configures ExtractLint.
type LintOptions struct {
	Encodings []decode.Encoding
}

// DefaultLintOptions tries UTF-16 first, as PowerShell redirection produces it, then UTF-8.
func DefaultLintOptions() LintOptions {
	return LintOptions{Encodings: []decode.Encoding{decode.UTF16, decode.UTF8}}
}
