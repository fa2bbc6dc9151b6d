package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	ngPhonePattern = regexp.MustCompile(`^(?:\+?234|0)?([789][01]\d{8})$`)
)

// SanitizeString trims whitespace and escapes HTML
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail lowercases, trims and strips markup from an email address
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = stripHTML(email)
	return removeControlChars(email)
}

// SanitizePhone keeps only digits and the leading plus sign
func SanitizePhone(phone string) string {
	phone = stripHTML(strings.TrimSpace(phone))

	var result strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeText sanitizes multi-line text input
func SanitizeText(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// IsNigerianPhone accepts local (080...), national (234...) and
// international (+234...) mobile numbers.
func IsNigerianPhone(phone string) bool {
	return ngPhonePattern.MatchString(SanitizePhone(phone))
}

// NormalizePhone rewrites a Nigerian mobile number to +234XXXXXXXXXX.
// Numbers that do not match are returned sanitized but otherwise untouched.
func NormalizePhone(phone string) string {
	sanitized := SanitizePhone(phone)
	m := ngPhonePattern.FindStringSubmatch(sanitized)
	if m == nil {
		return sanitized
	}
	return "+234" + m[1]
}

func stripHTML(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
