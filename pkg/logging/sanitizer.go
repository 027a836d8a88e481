package logging

import (
	"regexp"
)

const (
	// MaxBodyLogLength is the maximum length of a response body to log
	MaxBodyLogLength = 500
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match bearer tokens in headers or error text
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9-_.~+/=]+`)

	// Pattern to match OAuth form secrets (client_secret=..., refresh_token=...)
	formSecretPattern = regexp.MustCompile(`(?i)(client_secret|refresh_token)=[^&\s]+`)

	// Pattern to match token values in JSON bodies ("access_token": "...")
	jsonTokenPattern = regexp.MustCompile(`(?i)"(access_token|refresh_token|client_secret)"\s*:\s*"[^"]*"`)
)

// SanitizeBody redacts credentials from request/response text before logging.
func SanitizeBody(body string) string {
	if body == "" {
		return ""
	}

	sanitized := bearerPattern.ReplaceAllString(body, "Bearer "+RedactedText)
	sanitized = formSecretPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = jsonTokenPattern.ReplaceAllString(sanitized, `"${1}":"`+RedactedText+`"`)

	return TruncateString(sanitized, MaxBodyLogLength)
}

// SanitizeError sanitizes error messages that might contain credentials.
// Use this before logging any error from CRM calls.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeBody(err.Error())
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
