package common

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// DecodeJSON reads exactly one JSON value of type T from r.
// Trailing data after the value is an error.
func DecodeJSON[T any](r io.Reader) (T, error) {
	var zero T

	dec := json.NewDecoder(r)
	var result T
	if err := dec.Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, fmt.Errorf("no JSON value found: %w", io.ErrUnexpectedEOF)
		}
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, fmt.Errorf("unexpected data after JSON value")
	}

	return result, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
