package payment

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialsMissing = errors.New("Razorpay credentials not configured")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrProviderDown       = errors.New("payment provider unavailable")
)

const unknownProviderError = "Unknown error"

// APIError is a non-2xx answer from the Orders API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	desc := e.Description
	if desc == "" {
		desc = unknownProviderError
	}
	return fmt.Sprintf("Razorpay API error: %s", desc)
}

// clientSide reports whether the request itself was rejected. Those answers
// say nothing about provider health.
func (e *APIError) clientSide() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
