// Package review dispatches a single code review to an LLM provider.
//
// A [Dispatcher] validates a [Request], resolves the provider's model via the
// providers package, joins the instructions and diff into one prompt with
// [BuildPrompt], makes exactly one generation call and returns the text as a
// [Result].
//
// Failures are normalized into an [*Error] tagged with a [Kind]:
// MissingAPIKey and EmptyInput are raised before any network call,
// InvalidCredentials covers vendor authentication failures (detected from the
// HTTP status and, best effort, from the vendor's message), an empty reply is
// UpstreamEmptyResponse, and everything else is UpstreamFailure carrying the
// vendor's message with the API key scrubbed. Unsupported providers surface
// providers.ErrUnsupportedProvider unchanged. Nothing is retried.
//
// Instruction presets (presets.go) supply the default review checklist and a
// summary-style alternative.
package review
