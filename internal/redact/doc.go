// Package redact keeps API keys out of anything a caller might display or log.
//
// [Key] removes the caller's own key verbatim and then applies the
// [Credentials] heuristics, which match common credential shapes: Anthropic
// and OpenAI secret keys, Google API keys, bearer tokens and key= query
// parameters.
//
// Review diffs are never passed through this package; they reach the vendor
// exactly as supplied.
package redact
