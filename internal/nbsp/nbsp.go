// Package nbsp rewrites a source file in place, replacing non-breaking spaces with plain spaces.
package nbsp

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/logsift/internal/decode"
)

const (
	// NBSP is U+00A0.
	NBSP = "\u00a0"
	// Space replaces every NBSP.
	Space = " "
)

// ErrInvalidUTF8 is returned for files that are not valid UTF-8. They are never rewritten.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// Outcome describes what Fix did.
type Outcome int

const (
	// NotFound means the file had no NBSP and was left untouched.
	NotFound Outcome = iota
	// Replaced means every NBSP was replaced and the file written back.
	Replaced
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	default:
		return "not found"
	}
}

// Fix replaces every NBSP in the file at path. The file keeps its permissions.
// Files without NBSP are not written at all.
func Fix(path string) (Outcome, int, error) {
	data, err := decode.ReadFile(path)
	if err != nil {
		return NotFound, 0, err
	}

	if !utf8.Valid(data) {
		return NotFound, 0, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}

	content := string(data)

	count := strings.Count(content, NBSP)
	if count == 0 {
		slog.Debug("nbsp.Fix", "path", path, "stage", "clean")

		return NotFound, 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return NotFound, 0, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	slog.Debug("nbsp.Fix", "path", path, "occurrences", count, "stage", "rewrite")

	fixed := strings.ReplaceAll(content, NBSP, Space)
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return NotFound, 0, fmt.Errorf("writing %s: %w", path, err)
	}

	return Replaced, count, nil
}
