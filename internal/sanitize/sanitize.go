// Package sanitize normalizes untrusted request input before it is
// stored or echoed back.
package sanitize

import (
	"regexp"
	"strings"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input trims surrounding whitespace and escapes HTML metacharacters so
// the value is inert if it ever reaches markup.
func Input(s string) string {
	return htmlReplacer.Replace(strings.TrimSpace(s))
}

// ValidEmail reports whether s looks like an email address. The check is
// deliberately loose; deliverability is the mail system's problem.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Truncate caps s at max bytes.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
