// internal/api/handler/api/status.go
package api

import (
	"errors"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/core"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrProfileNotFound), errors.Is(err, core.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrValidationFailed), errors.Is(err, core.ErrUnknownDataType):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrProviderUnavailable), errors.Is(err, core.ErrProviderTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
