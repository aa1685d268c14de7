// Package pattern builds the rows of simple numeric and star triangles.
package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned for sizes below one.
var ErrInvalidSize = errors.New("pattern size must be at least 1")

// Shape is one of the printable triangles.
type Shape struct {
	Title string
	Rows  func(n int) []string
}

// Shapes returns the triangles in print order.
func Shapes() []Shape {
	return []Shape{
		{Title: "Ascending Numbers", Rows: Ascending},
		{Title: "Descending Numbers", Rows: Descending},
		{Title: "Left Aligned Stars", Rows: LeftStars},
		{Title: "Right Aligned Stars", Rows: RightStars},
	}
}

// Validate checks n is a usable size.
func Validate(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	return nil
}

// Ascending returns "1", "1 2", ... up to n.
func Ascending(n int) []string {
	rows := make([]string, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		rows = append(rows, numbers(1, i))
	}

	return rows
}

// Descending returns "n ... 1", "n-1 ... 1", ... down to "1".
func Descending(n int) []string {
	rows := make([]string, 0, max(n, 0))
	for i := n; i >= 1; i-- {
		rows = append(rows, numbers(i, 1))
	}

	return rows
}

// LeftStars returns rows of 1 to n stars.
func LeftStars(n int) []string {
	rows := make([]string, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		rows = append(rows, stars(i))
	}

	return rows
}

// RightStars returns rows of n down to 1 stars.
func RightStars(n int) []string {
	rows := make([]string, 0, max(n, 0))
	for i := n; i >= 1; i-- {
		rows = append(rows, stars(i))
	}

	return rows
}

func numbers(from, to int) string {
	step := 1
	if from > to {
		step = -1
	}

	parts := make([]string, 0, abs(to-from)+1)
	for i := from; ; i += step {
		parts = append(parts, strconv.Itoa(i))

		if i == to {
			break
		}
	}

	return strings.Join(parts, " ")
}

func stars(count int) string {
	return strings.TrimSuffix(strings.Repeat("* ", count), " ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
