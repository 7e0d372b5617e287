// Package gitctx gathers the diff text handed to a review.
//
// A diff comes either from a file or stdin ([FromFile], [FromReader]) or from
// git itself: working tree changes ([Unstaged]), the index ([Staged]), a
// single commit ([Commit]) or a revision range ([Range]). Sections can be
// dropped with exclude globs, and callers may cap the size with
// DiffOptions.MaxDiffBytes. The review core never truncates on its own.
package gitctx
