package utils

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)
var phoneJunk = regexp.MustCompile(`[\s\-().]+`)
var mobileRe = regexp.MustCompile(`^05\d{8}$`)

// ErrInvalidPhone is returned when a phone number cannot be normalized.
var ErrInvalidPhone = errors.New("invalid phone number")

// CleanName canonicalizes a display name: Unicode NFC, trimmed, inner
// whitespace collapsed. Names are stored as entered otherwise.
func CleanName(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return wsRe.ReplaceAllString(s, " ")
}

// NormalizePhone canonicalizes an Israeli mobile number to the local
// "05XXXXXXXX" form. Accepted inputs: the local form itself, the bare
// "5XXXXXXXX" form, and international "+972" / "972" prefixed variants,
// with any spacing or punctuation.
func NormalizePhone(s string) (string, error) {
	s = phoneJunk.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "972") {
		s = strings.TrimPrefix(s, "972")
		s = strings.TrimPrefix(s, "0")
		s = "0" + s
	}
	if len(s) == 9 && strings.HasPrefix(s, "5") {
		s = "0" + s
	}
	if !mobileRe.MatchString(s) {
		return "", ErrInvalidPhone
	}
	return s, nil
}

// TrimMax trims a string to a maximum length
func TrimMax(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
