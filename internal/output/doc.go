// Package output formats a finished review for display or saving.
//
// Three formats are supported:
//   - text: the review as the model wrote it, under a one-line header
//   - markdown: a standalone document, the default for saved reviews
//   - json: {"review": ..., "provider": ..., "model": ...} plus source metadata
//
// Use [GetWriter] for a format name or [WriteResult] to write straight to a
// file or stdout. [DefaultFilename] names saved reviews by date.
package output
