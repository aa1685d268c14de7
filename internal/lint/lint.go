// Package lint reads ESLint JSON reports and walks the errors they contain.
//
//nolint:tagliatelle
package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/logsift/internal/textlog"
)

// SeverityError is the severity ESLint's JSON formatter assigns to errors.
// No other severity value is interpreted.
const SeverityError = 2

var (
	// ErrMissingKey is returned when a record lacks a key needed to report it.
	ErrMissingKey = errors.New("missing key")
	// ErrInvalidField is returned when a key needed to report a record holds the wrong JSON type.
	ErrInvalidField = errors.New("invalid field")
	// ErrNotArray is returned when the report's top-level value is null.
	ErrNotArray = errors.New("expected a JSON array of results")
)

// Result is one file's entry in an ESLint JSON report.
// Parse only checks that each entry is an object. Fields are decoded when the scan reaches them,
// so a malformed field in a record that is never reported does not matter.
type Result struct {
	filePath   json.RawMessage
	errorCount json.RawMessage
	messages   json.RawMessage
}

// Message is a single error-severity diagnostic within a Result.
type Message struct {
	RuleID   string
	Line     int
	Message  string
	Severity int
}

type rawResult struct {
	FilePath   json.RawMessage `json:"filePath"`
	ErrorCount json.RawMessage `json:"errorCount"`
	Messages   json.RawMessage `json:"messages"`
}

type rawMessage struct {
	RuleID   json.RawMessage `json:"ruleId"`
	Line     json.RawMessage `json:"line"`
	Message  json.RawMessage `json:"message"`
	Severity json.RawMessage `json:"severity"`
}

// UnmarshalJSON keeps the fields of a result undecoded.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw rawResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Result{filePath: raw.FilePath, errorCount: raw.ErrorCount, messages: raw.Messages}

	return nil
}

// ErrorCount decodes the record's errorCount. An absent or null count is 0.
func (r *Result) ErrorCount() (int, error) {
	var count int
	if err := field(r.errorCount, "errorCount", &count); err != nil {
		if errors.Is(err, ErrMissingKey) {
			return 0, nil
		}

		return 0, err
	}

	return count, nil
}

// FilePath decodes the record's filePath.
func (r *Result) FilePath() (string, error) {
	var path string
	if err := field(r.filePath, "filePath", &path); err != nil {
		return "", err
	}

	return path, nil
}

// Errors decodes the record's error-severity messages in order. Messages of any other severity are
// skipped without looking at their other keys. An absent or null messages list is empty.
func (r *Result) Errors() iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		var messages []json.RawMessage
		if err := field(r.messages, "messages", &messages); err != nil {
			if !errors.Is(err, ErrMissingKey) {
				yield(Message{}, err)
			}

			return
		}

		for _, raw := range messages {
			msg, ok, err := decodeMessage(raw)
			if err != nil {
				yield(Message{}, err)

				return
			}

			if ok && !yield(msg, nil) {
				return
			}
		}
	}
}

// decodeMessage reports false for messages whose severity is anything but SeverityError.
// The line and message keys are only required once the severity matches.
func decodeMessage(data json.RawMessage) (Message, bool, error) {
	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{}, false, fmt.Errorf("%w: %q: %w", ErrInvalidField, "messages", err)
	}

	var severity float64
	if absent(raw.Severity) || json.Unmarshal(raw.Severity, &severity) != nil || severity != SeverityError {
		return Message{}, false, nil
	}

	msg := Message{Severity: SeverityError}

	if err := field(raw.Line, "line", &msg.Line); err != nil {
		return Message{}, false, err
	}

	if err := field(raw.Message, "message", &msg.Message); err != nil {
		return Message{}, false, err
	}

	// ruleId is null for parser errors and only informational.
	_ = json.Unmarshal(raw.RuleID, &msg.RuleID)

	return msg, true, nil
}

func field(data json.RawMessage, key string, into any) error {
	if absent(data) {
		return fmt.Errorf("%w: %q", ErrMissingKey, key)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidField, key, err)
	}

	return nil
}

func absent(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

// Parse decodes a JSON array of results.
func Parse(text string) ([]Result, error) {
	var results []Result
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	if results == nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, ErrNotArray)
	}

	return results, nil
}

// Kind tells an Entry header from an Entry message.
type Kind int

const (
	// KindFile opens the block for a file with errors.
	KindFile Kind = iota
	// KindMessage is one error within the current file block.
	KindMessage
)

// Entry is one unit of structured output.
type Entry struct {
	Kind    Kind
	File    string
	Line    int
	Message string
	RuleID  string
}

// Scan lazily walks results in order. Files with no errors are skipped without decoding anything
// else in them. For each remaining file it yields a KindFile entry, then one KindMessage entry per
// error-severity message. A missing or mistyped key yields an error and ends the sequence; entries
// already yielded stand.
func Scan(results []Result) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for idx := range results {
			result := &results[idx]

			count, err := result.ErrorCount()
			if err != nil {
				yield(Entry{}, fmt.Errorf("result %d: %w", idx, err))

				return
			}

			if count <= 0 {
				continue
			}

			path, err := result.FilePath()
			if err != nil {
				yield(Entry{}, fmt.Errorf("result %d: %w", idx, err))

				return
			}

			file := textlog.Basename(path)

			if !yield(Entry{Kind: KindFile, File: file}, nil) {
				return
			}

			for msg, err := range result.Errors() {
				if err != nil {
					yield(Entry{}, fmt.Errorf("%s: %w", file, err))

					return
				}

				entry := Entry{Kind: KindMessage, File: file, Line: msg.Line, Message: msg.Message, RuleID: msg.RuleID}
				if !yield(entry, nil) {
					return
				}
			}
		}
	}
}
