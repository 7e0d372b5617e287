package providers

import (
	"errors"
	"fmt"
)

type authError struct {
	statusCode int
	message    string
}

func (e *authError) Error() string {
	return fmt.Sprintf("authentication error (status %d): %s", e.statusCode, e.message)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// APIError is a non-success HTTP response from a vendor API.
type APIError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
