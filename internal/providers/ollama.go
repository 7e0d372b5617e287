package providers

import (
	"context"
	"net/http"
	"strings"
)

const defaultOllamaURL = "http://localhost:11434"

// ollamaModel talks to Ollama or LM Studio through their OpenAI-compatible API.
type ollamaModel struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newOllama(apiKey, model string, o options) *ollamaModel {
	return &ollamaModel{
		apiKey:  apiKey,
		model:   model,
		baseURL: normalizeOllamaURL(o.baseURL),
		client:  clientOrDefault(o.client, defaultLocalTimeout),
	}
}

// normalizeOllamaURL accepts a bare host (with or without scheme, as in
// OLLAMA_HOST=0.0.0.0:11434), a /v1 URL or the full completions URL and
// returns the completions URL.
func normalizeOllamaURL(u string) string {
	if u == "" {
		u = defaultOllamaURL
	}
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	u = strings.TrimRight(u, "/")
	u = strings.TrimSuffix(u, "/v1/chat/completions")
	u = strings.TrimSuffix(u, "/v1")
	return u + "/v1/chat/completions"
}

func (o *ollamaModel) Name() string    { return string(Ollama) }
func (o *ollamaModel) ModelID() string { return o.model }

func (o *ollamaModel) Generate(ctx context.Context, prompt string) (string, error) {
	return chatCompletion(ctx, o.client, Ollama, o.baseURL, o.apiKey, o.model, prompt)
}
