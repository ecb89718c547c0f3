package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	rePrice = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID parses a positive integer identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password only gates sign-up. Login accepts whatever was registered so
// accounts created under older rules keep working.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72 // 72 is the bcrypt input cap
}

// Price validates a decimal price string for admin product forms.
func Price(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePrice.MatchString(s)
}

// NonEmpty trims and reports whether anything remains. Shipping fields have
// no structure requirement beyond being present.
func NonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
