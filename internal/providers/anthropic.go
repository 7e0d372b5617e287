package providers

import (
	"context"
	"net/http"
	"strings"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
)

type anthropicModel struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

func newAnthropic(apiKey, model string, o options) *anthropicModel {
	url := o.baseURL
	if url == "" {
		url = anthropicAPIURL
	}
	return &anthropicModel{
		apiKey: apiKey,
		model:  model,
		url:    url,
		client: clientOrDefault(o.client, defaultTimeout),
	}
}

func (a *anthropicModel) Name() string    { return string(Anthropic) }
func (a *anthropicModel) ModelID() string { return a.model }

func (a *anthropicModel) Generate(ctx context.Context, prompt string) (string, error) {
	body := anthropicRequest{
		Model:     a.model,
		MaxTokens: defaultMaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicAPIVersion,
	}

	var result anthropicResponse
	if err := postJSON(ctx, a.client, Anthropic, a.url, headers, body, &result); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
