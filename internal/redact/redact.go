// Package redact strips credential material from strings before they are
// logged. Provider SDK errors can embed API keys in request URLs or
// header dumps; every failure cause that reaches a log line passes
// through here first.
package redact

import "regexp"

// RedactedKeyPlaceholder is substituted for redacted credential material.
const RedactedKeyPlaceholder = "[REDACTED_KEY]"

var (
	// Vendor API key shapes: OpenAI sk-..., Anthropic sk-ant-..., and
	// Google AIza... keys.
	vendorKeyRegex = regexp.MustCompile(`\b(sk-[A-Za-z0-9_-]{8,}|AIza[A-Za-z0-9_-]{10,})\b`)

	// key=..., api_key: ..., bearer ... style assignments.
	keyAssignRegex = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|authorization|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Credentials smuggled into URL query strings (?key=...).
	urlCredRegex = regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s]+`)
)

// String removes credential material from s.
func String(s string) string {
	s = vendorKeyRegex.ReplaceAllString(s, RedactedKeyPlaceholder)
	s = keyAssignRegex.ReplaceAllString(s, "${1}${2}"+RedactedKeyPlaceholder)
	s = urlCredRegex.ReplaceAllString(s, "${1}"+RedactedKeyPlaceholder)
	return s
}

// Error returns the redacted message of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
