package review

import (
	"regexp"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/dshills/diffreview/internal/redact"
)

// credentialPatterns are best effort. Vendors reword auth errors between
// API versions.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api[ _-]?key\b.*\b(invalid|not valid|incorrect|expired)\b`),
	regexp.MustCompile(`(?i)\b(invalid|incorrect)\b.*\bapi[ _-]?key`),
	regexp.MustCompile(`(?i)permission`),
	regexp.MustCompile(`(?i)unauthori[sz]ed|unauthenticated`),
	regexp.MustCompile(`\b401\b`),
}

func isCredentialError(err error) bool {
	if providers.IsAuthError(err) {
		return true
	}
	msg := err.Error()
	for _, pat := range credentialPatterns {
		if pat.MatchString(msg) {
			return true
		}
	}
	return false
}

// classify maps a generation error to InvalidCredentials or UpstreamFailure.
// The caller's key is scrubbed from the surfaced message.
func classify(err error, apiKey string) *Error {
	if isCredentialError(err) {
		return &Error{Kind: InvalidCredentials, Err: err}
	}
	return &Error{
		Kind:   UpstreamFailure,
		Detail: redact.Key(err.Error(), apiKey),
		Err:    err,
	}
}
