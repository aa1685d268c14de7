package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPatternsSingleSize(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printPatterns(&buf, []int{3}))

	want := `Testing with n=3:
=== Ascending Numbers for n=3 ===
1
1 2
1 2 3

=== Descending Numbers for n=3 ===
3 2 1
2 1
1

=== Left Aligned Stars for n=3 ===
*
* *
* * *

=== Right Aligned Stars for n=3 ===
* * *
* *
*
`
	assert.Equal(t, want, buf.String())
}

func TestPrintPatternsSeparatesSizes(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printPatterns(&buf, []int{1, 2}))

	assert.Contains(t, buf.String(), "*\n\n"+strings.Repeat("=", 50)+"\nTesting with n=2:\n")
	assert.Equal(t, 1, strings.Count(buf.String(), strings.Repeat("=", 50)+"\n"))
}
