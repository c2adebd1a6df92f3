package services

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a provider call requires a credential
// that was never configured. Handlers map it to a 500.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")

// ProviderError is a non-success reply (or transport failure) from an
// external provider. StatusCode is the upstream status, or 502 when the
// request never produced a response.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

// AsProviderError unwraps err into a *ProviderError if it is one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
