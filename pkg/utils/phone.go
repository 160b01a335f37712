package utils

import (
	"regexp"
	"strings"
)

// E.164: leading +, country code starting 1-9, 11-15 digits total.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{10,14}$`)

// ValidE164 reports whether s is a well-formed E.164 number.
func ValidE164(s string) bool {
	return e164Pattern.MatchString(s)
}

// NormalizePhone prefixes a bare number with '+' so it matches the backend's
// path parameter shape. No country-code inference happens here; a bare local
// number from outside NANP may normalize to something invalid, which the
// backend then rejects.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") {
		return s
	}
	return "+" + s
}
