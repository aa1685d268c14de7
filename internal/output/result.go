// Package output renders extracted findings, either as the plain line format or as
// primordium format data.
package output

import (
	"fmt"
	"io"
	"iter"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/logsift/internal/lint"
	"github.com/farcloser/logsift/internal/textlog"
)

// WriteExcerpts prints one "File: <name> | <line>" row per excerpt as it is produced.
func WriteExcerpts(w io.Writer, excerpts iter.Seq[textlog.Excerpt]) error {
	for excerpt := range excerpts {
		if _, err := fmt.Fprintf(w, "File: %s | %s\n", excerpt.File, excerpt.Line); err != nil {
			return err
		}
	}

	return nil
}

// WriteEntries prints a "File: <name>" row per file and a "  Line <n>: <message>" row per error.
// Rows are written as entries arrive, so a scan error leaves the rows before it in place.
// The scan error is returned after flushing those rows.
func WriteEntries(w io.Writer, entries iter.Seq2[lint.Entry, error]) error {
	for entry, err := range entries {
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, EntryLine(entry)); err != nil {
			return err
		}
	}

	return nil
}

// EntryLine formats a single entry as a plain row.
func EntryLine(entry lint.Entry) string {
	if entry.Kind == lint.KindFile {
		return "File: " + entry.File
	}

	return fmt.Sprintf("  Line %d: %s", entry.Line, entry.Message)
}

// ExcerptsToData groups consecutive excerpts sharing a file into one format.Data each.
func ExcerptsToData(excerpts iter.Seq[textlog.Excerpt]) []*format.Data {
	var (
		data    []*format.Data
		current *format.Data
		file    string
		lines   []any
	)

	flush := func() {
		if current != nil {
			current.Meta["problems"] = lines
			data = append(data, current)
		}
	}

	for excerpt := range excerpts {
		if current == nil || file != excerpt.File {
			flush()

			file = excerpt.File
			current = &format.Data{Object: file, Meta: map[string]any{}}
			lines = nil
		}

		lines = append(lines, excerpt.Line)
	}

	flush()

	return data
}

// EntriesToData builds one format.Data per file block. On a scan error the blocks collected so
// far are returned together with the error.
func EntriesToData(entries iter.Seq2[lint.Entry, error]) ([]*format.Data, error) {
	var data []*format.Data

	for entry, err := range entries {
		if err != nil {
			return data, err
		}

		if entry.Kind == lint.KindFile {
			data = append(data, &format.Data{
				Object: entry.File,
				Meta:   map[string]any{"errors": []any{}},
			})

			continue
		}

		if len(data) == 0 {
			continue
		}

		last := data[len(data)-1]
		last.Meta["errors"] = append(last.Meta["errors"].([]any), MessageToMap(entry)) //nolint:forcetypeassert // set above
	}

	return data, nil
}

// MessageToMap converts an error entry to a map.
func MessageToMap(entry lint.Entry) map[string]any {
	meta := map[string]any{
		"line":    entry.Line,
		"message": entry.Message,
	}

	if entry.RuleID != "" {
		meta["rule"] = entry.RuleID
	}

	return meta
}

// Print renders data with the named primordium formatter.
func Print(w io.Writer, formatName string, data []*format.Data) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	return formatter.PrintAll(data, w)
}
