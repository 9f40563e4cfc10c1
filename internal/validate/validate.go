package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Address trims and bounds a free-text shipping address.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window for sign-up.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}
