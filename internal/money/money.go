// Package money handles decimal-string prices ("12.99") exactly.
// Arithmetic happens in integer cents; floats never touch a total.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadPrice = errors.New("malformed price")

// ParseCents converts a decimal price string to integer cents.
// Accepts "12", "12.9" and "12.99"; rejects negatives and junk.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrBadPrice
	}
	whole, frac := s, ""
	dotted := false
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		dotted = true
	}
	if whole == "" || len(frac) > 2 || (dotted && frac == "") {
		return 0, ErrBadPrice
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrBadPrice
	}
	cents := w * 100
	switch len(frac) {
	case 0:
	case 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrBadPrice
		}
		cents += d * 10
	case 2:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrBadPrice
		}
		cents += d
	}
	return cents, nil
}

// FormatCents renders cents as a two-decimal string.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// Sum totals a list of decimal price strings into one two-decimal string.
func Sum(prices []string) (string, error) {
	var total int64
	for _, p := range prices {
		c, err := ParseCents(p)
		if err != nil {
			return "", fmt.Errorf("price %q: %w", p, err)
		}
		total += c
	}
	return FormatCents(total), nil
}

// Normalize re-renders a price string in canonical two-decimal form.
func Normalize(s string) (string, error) {
	c, err := ParseCents(s)
	if err != nil {
		return "", err
	}
	return FormatCents(c), nil
}
