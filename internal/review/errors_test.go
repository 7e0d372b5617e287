package review

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/diffreview/internal/providers"
)

func TestError_Is(t *testing.T) {
	err := &Error{Kind: EmptyInput, Detail: "diff content cannot be empty"}
	if !errors.Is(err, ErrEmptyInput) {
		t.Error("should match sentinel of same kind")
	}
	if errors.Is(err, ErrMissingAPIKey) {
		t.Error("should not match sentinel of other kind")
	}
	wrapped := fmt.Errorf("reviewing: %w", err)
	if !errors.Is(wrapped, ErrEmptyInput) {
		t.Error("should match through wrapping")
	}
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: MissingAPIKey}, msgMissingAPIKey},
		{&Error{Kind: InvalidCredentials, Err: errors.New("raw vendor text")}, msgInvalidCredentials},
		{&Error{Kind: UpstreamEmptyResponse}, msgEmptyResponse},
		{&Error{Kind: UpstreamFailure, Detail: "vendor said no"}, "vendor said no"},
		{&Error{Kind: EmptyInput}, "empty input"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.err.Kind, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, ""},
		{errors.New("plain"), ""},
		{&Error{Kind: UpstreamFailure}, UpstreamFailure},
		{fmt.Errorf("x: %w", &Error{Kind: InvalidCredentials}), InvalidCredentials},
		{fmt.Errorf("%w: %q", providers.ErrUnsupportedProvider, "v"), UnsupportedProvider},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestClassify_NotCredential(t *testing.T) {
	for _, msg := range []string{
		"openai API error (status 500): internal error",
		"sending request: context deadline exceeded",
		"gemini API error (status 429): quota exceeded",
	} {
		if e := classify(errors.New(msg), "k"); e.Kind != UpstreamFailure {
			t.Errorf("classify(%q) = %s, want upstream failure", msg, e.Kind)
		}
	}
}
