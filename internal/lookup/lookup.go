// Package lookup provides bounds-checked element access for user-supplied
// indices.
package lookup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// DefaultItems is the list used when no items are given.
var DefaultItems = []int{1, 2, 3, 4, 5}

// IndexOutOfRangeError reports an index outside [0, Length).
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

// Error returns a formatted message describing the bad index.
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d", e.Index, e.Length)
}

// Is matches ErrIndexOutOfRange and apperrors.ErrInvalidArgument.
func (e IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange || target == apperrors.ErrInvalidArgument
}

// ErrIndexOutOfRange is the sentinel matched by every IndexOutOfRangeError.
var ErrIndexOutOfRange = errors.New("index out of range")

// ElementAt returns items[index], or an IndexOutOfRangeError instead of panicking.
func ElementAt[T any](items []T, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, IndexOutOfRangeError{Index: index, Length: len(items)}
	}
	return items[index], nil
}

// ParseIndex parses a non-negative decimal index, ignoring surrounding whitespace.
func ParseIndex(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	idx, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperrors.NewInvalidArgument("lookup", trimmed, "index out of range")
	}
	if err != nil {
		return 0, apperrors.NewInvalidArgument("lookup", fmt.Sprintf("%q", trimmed), "index is not a number")
	}
	if idx < 0 {
		return 0, apperrors.NewInvalidArgument("lookup", idx, "index must be non-negative")
	}
	return idx, nil
}

// ParseItems parses a comma-separated list of integers. An empty string
// yields a copy of DefaultItems.
func ParseItems(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return append([]int(nil), DefaultItems...), nil
	}
	parts := strings.Split(s, ",")
	items := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperrors.NewInvalidArgument("lookup", fmt.Sprintf("%q", p), "item is not an integer")
		}
		items = append(items, v)
	}
	return items, nil
}

// FormatItems renders items the way ParseItems reads them.
func FormatItems(items []int) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
