// Package redact provides utilities for redacting sensitive information
// from strings before they are logged. This prevents accidental leakage
// of credentials, connection strings, and personal data through error
// messages.
package redact

import "regexp"

// Redaction placeholders
const (
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedKey        = "[REDACTED_KEY]"
	redactedJWT        = "[REDACTED_JWT]"
	redactedEmail      = "[REDACTED_EMAIL]"
	redactedSQL        = "[REDACTED_SQL]"
)

// Precompiled patterns, applied in order.
var patterns = []struct {
	re          *regexp.Regexp
	placeholder string
}{
	// Database connection strings with inline credentials
	{regexp.MustCompile(`(?i)(postgres|mysql|redis)://[^@\s]+@`), redactedCredential},
	// Passwords and secrets in key=value or key: value form
	{regexp.MustCompile(`(?i)(password|passwd|pwd|secret)([=:\s]['"]?)[^'"&\s]{3,}`), redactedCredential},
	// API keys and tokens
	{regexp.MustCompile(`(?i)(api[_-]?key|token|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), redactedKey},
	// Three-part base64url JWT tokens
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), redactedJWT},
	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), redactedEmail},
	// SQL fragments that could expose schema details
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)[\s\w,*()='"$]*`), redactedSQL},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
