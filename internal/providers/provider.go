package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Provider identifies a supported LLM vendor.
type Provider string

const (
	Anthropic Provider = "anthropic"
	OpenAI    Provider = "openai"
	Gemini    Provider = "gemini"
	Ollama    Provider = "ollama"
)

// ErrUnsupportedProvider is returned when a provider name is not one of the
// supported vendors.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// All returns the supported providers in display order.
func All() []Provider {
	return []Provider{Gemini, OpenAI, Anthropic, Ollama}
}

// ParseProvider normalizes a provider name, accepting common aliases.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "anthropic", "claude":
		return Anthropic, nil
	case "openai":
		return OpenAI, nil
	case "gemini", "google":
		return Gemini, nil
	case "ollama", "lmstudio":
		return Ollama, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
}

// Model is a handle bound to one vendor model and one API key.
type Model interface {
	// Generate sends prompt as the entire context and returns the text.
	// An empty string with a nil error means the vendor returned no text.
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
	ModelID() string
}

type options struct {
	client  *http.Client
	baseURL string
}

// Option configures a Model built by Resolve.
type Option func(*options)

// WithHTTPClient overrides the HTTP client used for generation calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithBaseURL points the model at a different endpoint. For OpenAI and Ollama
// this is the chat completions URL or host; for Anthropic the messages URL;
// for Gemini the models collection URL.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// Resolve returns a Model for the provider and strength, configured with
// apiKey. It performs no network I/O.
func Resolve(p Provider, apiKey string, useStrong bool, opts ...Option) (Model, error) {
	sel, err := Select(p, useStrong)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch sel.Provider {
	case Anthropic:
		return newAnthropic(apiKey, sel.ModelID, o), nil
	case OpenAI:
		return newOpenAI(apiKey, sel.ModelID, o), nil
	case Gemini:
		return newGemini(apiKey, sel.ModelID, o), nil
	case Ollama:
		return newOllama(apiKey, sel.ModelID, o), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(p))
	}
}
