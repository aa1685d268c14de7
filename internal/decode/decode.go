// Package decode turns raw log bytes into text by trying an ordered list of candidate encodings.
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/farcloser/primordium/fault"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUndecodable is matched by every *Error.
	ErrUndecodable = errors.New("no candidate encoding could decode the input")
	// ErrUnknownEncoding is returned for encoding names Lookup does not recognize.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrInvalidUTF8 is returned by the UTF-8 candidate on malformed input.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrInvalidUTF16 is returned by the UTF-16 candidate for an odd byte count or an unpaired surrogate.
	ErrInvalidUTF16 = errors.New("invalid UTF-16")
	// ErrNoCandidates is returned when Try is handed an empty candidate list.
	ErrNoCandidates = errors.New("no candidate encodings")
)

// Encoding names one candidate text encoding.
type Encoding string

const (
	// UTF8 is strict UTF-8. A leading byte order mark is stripped.
	UTF8 Encoding = "utf-8"
	// UTF16 requires a byte order mark, which selects the byte order.
	UTF16 Encoding = "utf-16"
)

// Lookup resolves a user-supplied encoding name.
func Lookup(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16", "utf16":
		return UTF16, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// LookupAll resolves a list of names, keeping their order.
func LookupAll(names []string) ([]Encoding, error) {
	encodings := make([]Encoding, 0, len(names))

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		enc, err := Lookup(name)
		if err != nil {
			return nil, err
		}

		encodings = append(encodings, enc)
	}

	return encodings, nil
}

// Decode converts data to a string. Malformed input is an error for both encodings; no
// replacement characters are substituted.
func (e Encoding) Decode(data []byte) (string, error) {
	switch e {
	case UTF8:
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}

		out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}

		return string(out), nil
	case UTF16:
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}

		// The x/text decoder turns malformed sequences into U+FFFD.
		if err := validUTF16(data); err != nil {
			return "", err
		}

		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, string(e))
	}
}

// validUTF16 checks BOM-prefixed data for whole code units and paired surrogates.
func validUTF16(data []byte) error {
	if len(data)%2 != 0 {
		return fmt.Errorf("%w: odd byte count %d", ErrInvalidUTF16, len(data))
	}

	var order binary.ByteOrder = binary.LittleEndian
	if len(data) >= 2 && data[0] == 0xfe && data[1] == 0xff {
		order = binary.BigEndian
	}

	for off := 0; off < len(data); off += 2 {
		unit := order.Uint16(data[off:])

		switch {
		case unit >= 0xd800 && unit < 0xdc00:
			if off+4 > len(data) {
				return fmt.Errorf("%w: unpaired surrogate at byte %d", ErrInvalidUTF16, off)
			}

			if next := order.Uint16(data[off+2:]); next < 0xdc00 || next > 0xdfff {
				return fmt.Errorf("%w: unpaired surrogate at byte %d", ErrInvalidUTF16, off)
			}

			off += 2
		case unit >= 0xdc00 && unit <= 0xdfff:
			return fmt.Errorf("%w: unpaired surrogate at byte %d", ErrInvalidUTF16, off)
		}
	}

	return nil
}

// Attempt records why one candidate was rejected.
type Attempt struct {
	Encoding Encoding
	Err      error
}

// Error is returned when every candidate was rejected.
type Error struct {
	Attempts []Attempt
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", attempt.Encoding, attempt.Err))
	}

	return fmt.Sprintf("%s (%s)", ErrUndecodable, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts)+1)
	errs = append(errs, ErrUndecodable)

	for _, attempt := range e.Attempts {
		errs = append(errs, attempt.Err)
	}

	return errs
}

// Try decodes data with each candidate in order and hands the text to parse.
// The first candidate for which both steps succeed wins. A parse failure rejects the
// candidate the same way a decode failure does.
func Try[T any](data []byte, candidates []Encoding, parse func(string) (T, error)) (T, Encoding, error) {
	var zero T

	if len(candidates) == 0 {
		return zero, "", ErrNoCandidates
	}

	failure := &Error{}

	for _, enc := range candidates {
		slog.Debug("decode.Try", "encoding", string(enc), "stage", "attempt")

		text, err := enc.Decode(data)
		if err == nil {
			var value T

			value, err = parse(text)
			if err == nil {
				slog.Debug("decode.Try", "encoding", string(enc), "stage", "selected")

				return value, enc, nil
			}
		}

		slog.Debug("decode.Try", "encoding", string(enc), "stage", "rejected", "error", err)

		failure.Attempts = append(failure.Attempts, Attempt{Encoding: enc, Err: err})
	}

	return zero, "", failure
}

// Text decodes data with the first candidate that accepts it.
func Text(data []byte, candidates []Encoding) (string, Encoding, error) {
	return Try(data, candidates, func(text string) (string, error) {
		return text, nil
	})
}

// ReadFile reads a whole file, releasing the handle on every path.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified log files
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return data, nil
}
