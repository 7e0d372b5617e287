// Package cli wires together the Cobra command tree for the diffreview binary.
//
// It defines the root command and all subcommands (review, serve, config,
// models, version), binds flags, reads configuration, calls the review
// dispatcher and returns deterministic exit codes.
package cli
