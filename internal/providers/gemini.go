package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models"

type geminiModel struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newGemini(apiKey, model string, o options) *geminiModel {
	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = geminiAPIURL
	}
	return &geminiModel{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  clientOrDefault(o.client, defaultTimeout),
	}
}

func (g *geminiModel) Name() string    { return string(Gemini) }
func (g *geminiModel) ModelID() string { return g.model }

func (g *geminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	// The key goes in a header so it never appears in a URL or url.Error.
	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	headers := map[string]string{"x-goog-api-key": g.apiKey}

	body := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
	}

	var result geminiResponse
	if err := postJSON(ctx, g.client, Gemini, url, headers, body, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 {
		return "", nil
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}
