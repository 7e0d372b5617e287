package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// minLiteralKeyLen is the shortest key scrubbed verbatim. Shorter values
// (local placeholders like "x") would shred ordinary words.
const minLiteralKeyLen = 8

// keyPatterns match credential shapes vendors commonly echo back in errors.
var keyPatterns = []*regexp.Regexp{
	// Anthropic API keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	// OpenAI API keys (including project keys)
	regexp.MustCompile(`sk-(proj-)?[A-Za-z0-9_-]{20,}`),
	// Google API keys
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
}

var queryKeyPattern = regexp.MustCompile(`(?i)([?&]key=)[^&\s"']+`)

// Key removes apiKey and anything shaped like a vendor credential from text.
func Key(text, apiKey string) string {
	result := text
	if k := strings.TrimSpace(apiKey); len(k) >= minLiteralKeyLen {
		result = strings.ReplaceAll(result, k, placeholder)
	}
	return Credentials(result)
}

// Credentials replaces vendor-credential-shaped substrings with [REDACTED].
func Credentials(text string) string {
	result := text
	for _, pat := range keyPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return queryKeyPattern.ReplaceAllString(result, "${1}"+placeholder)
}
