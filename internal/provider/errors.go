package provider

import (
	stderrors "errors"
	"fmt"

	"eeg-insight/internal/errors"
)

var (
	ErrMalformedResponse = stderrors.New("malformed provider response")
	ErrEmptyCompletion   = stderrors.New("provider returned no completion text")
)

// Error is an AIProviderError. StatusCode is 0 for transport failures,
// timeouts and limiter waits that never reached the provider.
type Error struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return e.Provider + ": request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match the ai_provider_error code.
func (e *Error) Is(target error) bool {
	appErr, ok := target.(*errors.AppError)
	return ok && appErr.Code == errors.ErrAIProvider
}
