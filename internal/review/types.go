package review

import (
	"fmt"
	"strings"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/rs/zerolog"
)

// Request is a single review call. APIKey is opaque and is never logged,
// serialized or included in errors.
type Request struct {
	Diff           string
	Instructions   string
	Provider       providers.Provider
	APIKey         string
	UseStrongModel bool
}

// Validate checks the request before any resolver or network call.
func (r Request) Validate() error {
	if strings.TrimSpace(r.APIKey) == "" {
		return &Error{Kind: MissingAPIKey}
	}
	if strings.TrimSpace(r.Diff) == "" {
		return &Error{Kind: EmptyInput, Detail: "diff content cannot be empty"}
	}
	if strings.TrimSpace(r.Instructions) == "" {
		return &Error{Kind: EmptyInput, Detail: "review instructions cannot be empty"}
	}
	return nil
}

// String omits the API key so a Request is safe to print.
func (r Request) String() string {
	return fmt.Sprintf("review.Request{provider=%s strong=%t diff=%dB instructions=%dB}",
		r.Provider, r.UseStrongModel, len(r.Diff), len(r.Instructions))
}

// MarshalZerologObject logs the request without the API key.
func (r Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("provider", string(r.Provider)).
		Bool("strong", r.UseStrongModel).
		Int("diffBytes", len(r.Diff)).
		Int("instructionsBytes", len(r.Instructions))
}

// Result is a successful review.
type Result struct {
	Review   string             `json:"review"`
	Provider providers.Provider `json:"provider,omitempty"`
	Model    string             `json:"model,omitempty"`
}
