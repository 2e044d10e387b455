package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	// search terms: letters (accented included), digits, space, hyphen
	reTerm = regexp.MustCompile(`^[\p{L}\p{N} '-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Term validates a directory search query: trims, caps length, enforces
// the allowed character set.
func Term(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	return s, reTerm.MatchString(s)
}

// PhoneDigits strips everything but digits and checks for a full
// area-code number (10 or 11 digits).
func PhoneDigits(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	return d, len(d) == 10 || len(d) == 11
}

// Password enforces the minimum credential length.
func Password(s string) bool { return len(s) >= 6 }
