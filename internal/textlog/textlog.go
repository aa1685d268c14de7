// Package textlog scans plain-text lint or build output for problem lines, attributing each one
// to the source file most recently named in the log.
package textlog

import (
	"bufio"
	"bytes"
	"iter"
	"strings"
)

// Unknown is the file attribution used before any file marker has been seen.
const Unknown = "Unknown"

// Matching selects how problem lines are recognized.
type Matching int

const (
	// MatchFolded lowercases the line before looking for "warning" or "error", and drops lines
	// containing any of the suppression substrings (summary lines).
	MatchFolded Matching = iota
	// MatchExact looks for "error" or "warning" as written, with no suppression.
	MatchExact
)

// Rules is the heuristic deciding what a line means.
type Rules struct {
	// Suffixes a trimmed line must end with to be a file marker.
	Suffixes []string
	// Fragments a file marker must also contain (project-relative or drive markers).
	Fragments []string
	// Suppress lists case-sensitive substrings that disqualify a problem line under MatchFolded.
	Suppress []string
	Matching Matching
}

// Excerpt is one problem line with the file it was attributed to.
type Excerpt struct {
	File string
	Line string
}

// IsFileMarker reports whether the trimmed line names a source file.
func (r Rules) IsFileMarker(line string) bool {
	return hasAnySuffix(line, r.Suffixes) && containsAny(line, r.Fragments)
}

// IsProblemLine reports whether the trimmed line should be surfaced.
func (r Rules) IsProblemLine(line string) bool {
	switch r.Matching {
	case MatchExact:
		return strings.Contains(line, "error") || strings.Contains(line, "warning")
	default:
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "warning") && !strings.Contains(lower, "error") {
			return false
		}

		return !containsAny(line, r.Suppress)
	}
}

// Scan lazily walks lines and yields every problem line, tagged with the file current at that point.
// A line that is both a marker and a problem line updates the file first.
func (r Rules) Scan(lines iter.Seq[string]) iter.Seq[Excerpt] {
	return func(yield func(Excerpt) bool) {
		current := Unknown

		for raw := range lines {
			line := strings.TrimSpace(raw)

			if r.IsFileMarker(line) {
				current = Basename(line)
			}

			if r.IsProblemLine(line) {
				if !yield(Excerpt{File: current, Line: line}) {
					return
				}
			}
		}
	}
}

// Lines splits text into lines ending in "\n", "\r\n" or a lone "\r". Terminators are dropped.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(strings.NewReader(text))
		scanner.Buffer(nil, max(len(text)+1, bufio.MaxScanTokenSize))
		scanner.Split(splitLines)

		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}

func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	idx := bytes.IndexAny(data, "\r\n")

	switch {
	case idx < 0:
		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	case data[idx] == '\n':
		return idx + 1, data[:idx], nil
	case idx+1 < len(data):
		if data[idx+1] == '\n' {
			return idx + 2, data[:idx], nil
		}

		return idx + 1, data[:idx], nil
	case atEOF:
		return idx + 1, data[:idx], nil
	default:
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}
}

// Basename returns the last path component, treating both '/' and '\' as separators
// since the logs come from Windows and POSIX machines alike.
func Basename(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}

	return path
}

func hasAnySuffix(line string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}

	return false
}

func containsAny(line string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(line, needle) {
			return true
		}
	}

	return false
}
