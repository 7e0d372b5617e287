package providers

import (
	"context"
	"net/http"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

type openaiModel struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newOpenAI(apiKey, model string, o options) *openaiModel {
	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &openaiModel{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  clientOrDefault(o.client, defaultTimeout),
	}
}

func (m *openaiModel) Name() string    { return string(OpenAI) }
func (m *openaiModel) ModelID() string { return m.model }

func (m *openaiModel) Generate(ctx context.Context, prompt string) (string, error) {
	return chatCompletion(ctx, m.client, OpenAI, m.baseURL, m.apiKey, m.model, prompt)
}

// chatCompletion performs a single-message call against an OpenAI-compatible
// chat completions endpoint.
func chatCompletion(ctx context.Context, client *http.Client, p Provider, url, apiKey, model, prompt string) (string, error) {
	body := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}

	var result openaiResponse
	if err := postJSON(ctx, client, p, url, headers, body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}
