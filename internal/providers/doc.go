// Package providers resolves a vendor and a strong/weak toggle into a model
// handle that can generate text from a prompt.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini), and
// Ollama / LM Studio for local models. Model identifiers live in a single
// static table (models.go); [Select] reads it and [Resolve] builds a [Model]
// bound to the caller's API key without touching the network.
//
// Every [Model] sends the prompt as one user message and returns the text.
// There is no retry: 401/403 responses become authentication errors
// ([IsAuthError]) and other non-200 responses become [*APIError]. HTTP clients
// and endpoints are injectable with [WithHTTPClient] and [WithBaseURL] so
// tests can point calls at httptest servers.
package providers
