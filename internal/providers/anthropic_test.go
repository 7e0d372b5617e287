package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc, key string) *anthropicModel {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newAnthropic(key, "claude-sonnet-4-20250514", options{
		client:  server.Client(),
		baseURL: server.URL,
	})
}

func TestAnthropic_Generate(t *testing.T) {
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("Missing API key header")
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Error("Missing anthropic-version header")
		}

		var body anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" || body.Messages[0].Content != "the prompt" {
			t.Errorf("messages = %+v, want one user message", body.Messages)
		}
		if body.MaxTokens != defaultMaxTokens {
			t.Errorf("MaxTokens = %d, want %d", body.MaxTokens, defaultMaxTokens)
		}

		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicBlock{
				{Type: "text", Text: "LG"},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: "TM"},
			},
		})
	}, "test-key")

	text, err := a.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "LGTM" {
		t.Errorf("text = %q, want %q", text, "LGTM")
	}
}

func TestAnthropic_AuthError(t *testing.T) {
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}, "bad-key")

	_, err := a.Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("Expected auth error")
	}
	if !IsAuthError(err) {
		t.Errorf("Expected auth error, got: %v", err)
	}
}

func TestAnthropic_ServerErrorNotRetried(t *testing.T) {
	attempts := 0
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(529)
		w.Write([]byte(`{"error":"overloaded"}`))
	}, "test-key")

	_, err := a.Generate(context.Background(), "p")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 529 {
		t.Errorf("StatusCode = %d, want 529", apiErr.StatusCode)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry)", attempts)
	}
}

func TestAnthropic_EmptyContent(t *testing.T) {
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{Content: []anthropicBlock{}})
	}, "test-key")

	text, err := a.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestAnthropic_InvalidJSON(t *testing.T) {
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}, "test-key")

	if _, err := a.Generate(context.Background(), "p"); err == nil {
		t.Error("Expected parse error")
	}
}
