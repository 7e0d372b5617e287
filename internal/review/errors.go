package review

import (
	"errors"
	"strings"

	"github.com/dshills/diffreview/internal/providers"
)

// Kind classifies a review failure independently of the vendor.
type Kind string

const (
	MissingAPIKey         Kind = "missing_api_key"
	EmptyInput            Kind = "empty_input"
	UnsupportedProvider   Kind = "unsupported_provider"
	InvalidCredentials    Kind = "invalid_credentials"
	UpstreamEmptyResponse Kind = "upstream_empty_response"
	UpstreamFailure       Kind = "upstream_failure"
)

const (
	msgMissingAPIKey      = "API key is missing: set your API key before requesting a review"
	msgInvalidCredentials = "invalid API key: please check your API key and try again"
	msgEmptyResponse      = "the model returned an empty response"
)

// Error is a normalized review failure.
type Error struct {
	Kind Kind
	// Detail is the user-facing text for EmptyInput and UpstreamFailure.
	Detail string
	Err    error
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrMissingAPIKey         = &Error{Kind: MissingAPIKey}
	ErrEmptyInput            = &Error{Kind: EmptyInput}
	ErrInvalidCredentials    = &Error{Kind: InvalidCredentials}
	ErrUpstreamEmptyResponse = &Error{Kind: UpstreamEmptyResponse}
	ErrUpstreamFailure       = &Error{Kind: UpstreamFailure}
)

func (e *Error) Error() string {
	switch e.Kind {
	case MissingAPIKey:
		return msgMissingAPIKey
	case InvalidCredentials:
		return msgInvalidCredentials
	case UpstreamEmptyResponse:
		return msgEmptyResponse
	default:
		if e.Detail != "" {
			return e.Detail
		}
		return strings.ReplaceAll(string(e.Kind), "_", " ")
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the failure kind of err, or "" if err is not a review failure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, providers.ErrUnsupportedProvider) {
		return UnsupportedProvider
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
