package decode_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/farcloser/logsift/internal/decode"
)

func utf16LE(t *testing.T, text string) []byte {
	t.Helper()

	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	return out
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    decode.Encoding
		wantErr bool
	}{
		{name: "utf-8", want: decode.UTF8},
		{name: "UTF8", want: decode.UTF8},
		{name: " utf-16 ", want: decode.UTF16},
		{name: "utf16", want: decode.UTF16},
		{name: "latin-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.Lookup(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, decode.ErrUnknownEncoding)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupAllKeepsOrderAndSkipsBlanks(t *testing.T) {
	got, err := decode.LookupAll([]string{"utf-16", "", "utf-8"})
	require.NoError(t, err)
	assert.Equal(t, []decode.Encoding{decode.UTF16, decode.UTF8}, got)
}

func TestTextPrefersFirstCandidate(t *testing.T) {
	data := utf16LE(t, "src/Foo.tsx\nwarning")

	text, enc, err := decode.Text(data, []decode.Encoding{decode.UTF16, decode.UTF8})
	require.NoError(t, err)
	assert.Equal(t, decode.UTF16, enc)
	assert.Equal(t, "src/Foo.tsx\nwarning", text)
}

func TestTextFallsBackWhenBOMMissing(t *testing.T) {
	text, enc, err := decode.Text([]byte("plain ascii"), []decode.Encoding{decode.UTF16, decode.UTF8})
	require.NoError(t, err)
	assert.Equal(t, decode.UTF8, enc)
	assert.Equal(t, "plain ascii", text)
}

func TestTextStripsUTF8BOM(t *testing.T) {
	text, _, err := decode.Text([]byte("\xef\xbb\xbfhello"), []decode.Encoding{decode.UTF8})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTextEmptyInputFallsBackToUTF8(t *testing.T) {
	text, enc, err := decode.Text(nil, []decode.Encoding{decode.UTF16, decode.UTF8})
	require.NoError(t, err)
	assert.Equal(t, decode.UTF8, enc)
	assert.Empty(t, text)
}

func TestTextAllCandidatesFail(t *testing.T) {
	_, _, err := decode.Text([]byte{0xc3, 0x28}, []decode.Encoding{decode.UTF16, decode.UTF8})
	require.Error(t, err)
	require.ErrorIs(t, err, decode.ErrUndecodable)
	require.ErrorIs(t, err, decode.ErrInvalidUTF8)
	require.ErrorIs(t, err, unicode.ErrMissingBOM)

	var failure *decode.Error
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Attempts, 2)
	assert.Equal(t, decode.UTF16, failure.Attempts[0].Encoding)
	assert.Equal(t, decode.UTF8, failure.Attempts[1].Encoding)
	assert.Contains(t, err.Error(), "utf-16:")
	assert.Contains(t, err.Error(), "utf-8:")
}

func TestUTF16RejectsMalformedInput(t *testing.T) {
	valid := utf16LE(t, "error: 😀")

	tests := []struct {
		name string
		data []byte
	}{
		{name: "stray trailing byte", data: append(append([]byte{}, valid...), 'x')},
		{name: "lone high surrogate", data: []byte{0xff, 0xfe, 'a', 0x00, 0x3d, 0xd8}},
		{name: "high surrogate then ascii", data: []byte{0xff, 0xfe, 0x3d, 0xd8, 'a', 0x00}},
		{name: "lone low surrogate", data: []byte{0xff, 0xfe, 0x00, 0xde, 'a', 0x00}},
		{name: "big endian lone low surrogate", data: []byte{0xfe, 0xff, 0xde, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode.UTF16.Decode(tt.data)
			require.ErrorIs(t, err, decode.ErrInvalidUTF16)
		})
	}

	text, err := decode.UTF16.Decode(valid)
	require.NoError(t, err)
	assert.Equal(t, "error: 😀", text)
}

func TestTextFallsBackOnTruncatedUTF16(t *testing.T) {
	data := append(utf16LE(t, "warning"), 0x00)

	_, _, err := decode.Text(data, []decode.Encoding{decode.UTF16, decode.UTF8})
	require.ErrorIs(t, err, decode.ErrUndecodable)
	require.ErrorIs(t, err, decode.ErrInvalidUTF16)
}

func TestTryParseFailureRejectsCandidate(t *testing.T) {
	parse := func(text string) ([]any, error) {
		var out []any
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return nil, errors.Join(fault.ErrInvalidJSON, err)
		}

		return out, nil
	}

	_, _, err := decode.Try([]byte("{not json"), []decode.Encoding{decode.UTF16, decode.UTF8}, parse)
	require.ErrorIs(t, err, decode.ErrUndecodable)
	require.ErrorIs(t, err, fault.ErrInvalidJSON)

	value, enc, err := decode.Try([]byte(`[1, 2]`), []decode.Encoding{decode.UTF16, decode.UTF8}, parse)
	require.NoError(t, err)
	assert.Equal(t, decode.UTF8, enc)
	assert.Len(t, value, 2)
}

func TestTryWithoutCandidates(t *testing.T) {
	_, _, err := decode.Text([]byte("x"), nil)
	require.ErrorIs(t, err, decode.ErrNoCandidates)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	data, err := decode.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = decode.ReadFile(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, fault.ErrReadFailure)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
