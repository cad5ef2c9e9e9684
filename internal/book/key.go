package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseKey reads a position hash written as hex ("0x463b96181691fc9c" or a
// bare 16-digit hex string) or as a decimal number.
func ParseKey(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("parse key: empty")
	}
	lower := strings.ToLower(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(lower, "0x"):
		v, err = strconv.ParseUint(lower[2:], 16, 64)
	case len(s) == 16:
		v, err = strconv.ParseUint(lower, 16, 64)
	default:
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("parse key %q: %w", s, err)
	}
	return v, nil
}

// FormatKey renders key the way ParseKey reads it back.
func FormatKey(key uint64) string {
	return fmt.Sprintf("0x%016x", key)
}
