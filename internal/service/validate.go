package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phonePattern      = regexp.MustCompile(`^\d{10}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`)
)

const (
	msgPhone = "Please enter a valid 10-digit phone number (no spaces)."
	msgEmail = "Please follow the correct email format test@email.com"
)

func (e *ValidationError) required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
	}
}

func (e *ValidationError) maxLen(field, value string, n int, msg string) {
	if utf8.RuneCountInString(value) > n {
		e.Add(field, msg)
	}
}

func (e *ValidationError) matches(field, value string, re *regexp.Regexp, msg string) {
	if value != "" && !re.MatchString(value) {
		e.Add(field, msg)
	}
}

// normalizePostalCode renders a valid code as "A1A 1A1".
func normalizePostalCode(s string) string {
	s = strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s)))
	if len(s) != 6 {
		return s
	}
	return s[:3] + " " + s[3:]
}
