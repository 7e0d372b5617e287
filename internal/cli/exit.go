package cli

import (
	"github.com/dshills/diffreview/internal/review"
)

// exitCodeFor maps a review failure to a process exit code.
func exitCodeFor(err error) int {
	switch review.KindOf(err) {
	case "":
		if err == nil {
			return ExitSuccess
		}
		return ExitRuntimeError
	case review.EmptyInput, review.UnsupportedProvider:
		return ExitUsageError
	case review.MissingAPIKey, review.InvalidCredentials:
		return ExitAuthError
	default:
		return ExitRuntimeError
	}
}
