package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// Field is a scalar request body value. The dashboard posts form values as
// strings, API clients send numbers or booleans; both land here as text.
type Field struct {
	raw string
}

// UnmarshalJSON accepts a string, number, boolean or null.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		f.raw = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.raw = strings.TrimSpace(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errors.New("expected a scalar value")
	default:
		f.raw = string(b)
	}
	return nil
}

// String returns the trimmed text, empty when absent.
func (f Field) String() string { return f.raw }

// Present reports whether a non-empty value was sent.
func (f Field) Present() bool { return f.raw != "" }

// Int64 parses the value as an integer. Integral floats such as 3.0 are accepted.
func (f Field) Int64() (int64, error) {
	n, err := strconv.ParseInt(f.raw, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errNotInteger
	}
	v, err := strconv.ParseFloat(f.raw, 64)
	// float64 cannot hold MaxInt64 exactly; 2^63 is the first value out of range
	if err != nil || v != math.Trunc(v) || v >= 1<<63 || v < -(1<<63) {
		return 0, errNotInteger
	}
	return int64(v), nil
}

// OptionalInt64 returns nil for an absent value.
func (f Field) OptionalInt64() (*int64, error) {
	if !f.Present() {
		return nil, nil
	}
	n, err := f.Int64()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Bool treats 1, true, yes, y and on (any case) as true.
func (f Field) Bool() bool {
	switch strings.ToLower(f.raw) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
