package tests_test

import (
	"fmt"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
	"golang.org/x/text/encoding/unicode"
)

// expectLines returns a comparator verifying stdout is exactly the given lines, each newline-terminated.
func expectLines(lines ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		expected := ""
		if len(lines) > 0 {
			expected = strings.Join(lines, "\n") + "\n"
		}

		if stdout == expected {
			return
		}

		testing.Log(fmt.Sprintf("expected output:\n%q\ngot:\n%q", expected, stdout))
		testing.Fail()
	}
}

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectNotContains returns a comparator verifying the output does not contain a substring.
func expectNotContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("unexpected substring %q found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectInOrder returns a comparator verifying the output contains each substring, in the given order.
func expectInOrder(substrs ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		rest := stdout
		for _, substr := range substrs {
			idx := strings.Index(rest, substr)
			if idx < 0 {
				testing.Log(fmt.Sprintf("expected substring %q, in order, not found in output:\n%s", substr, stdout))
				testing.Fail()

				return
			}

			rest = rest[idx+len(substr):]
		}
	}
}

// expectFile returns a comparator verifying a temp file's content, ignoring stdout.
func expectFile(data test.Data, key, content string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		if got := data.Temp().Load(key); got != content {
			testing.Log(fmt.Sprintf("expected file %q to contain %q, got %q", key, content, got))
			testing.Fail()
		}
	}
}

// utf16 encodes text as UTF-16LE with a byte order mark, the way PowerShell redirection writes it.
func utf16(text string) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	if err != nil {
		panic(err)
	}

	return out
}
