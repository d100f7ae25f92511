package janussdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeConflict          = "conflict"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeStaleState        = "stale_state"
	ErrorCodeServerError       = "server_error"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode    int
	Code          string
	Description   string
	CurrentStatus string // only for stale_state
}

func (e *APIError) Error() string {
	if e.CurrentStatus != "" {
		return fmt.Sprintf("%s: %s (current status %s)", e.Code, e.Description, e.CurrentStatus)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsNotFound reports whether err is a not_found APIError.
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsStaleState reports whether err is a stale_state APIError, i.e. the
// request was already resolved.
func IsStaleState(err error) bool { return hasCode(err, ErrorCodeStaleState) }

// IsConflict reports whether err is a conflict APIError.
func IsConflict(err error) bool { return hasCode(err, ErrorCodeConflict) }

// IsValidation reports whether err is a validation_error APIError.
func IsValidation(err error) bool { return hasCode(err, ErrorCodeValidation) }

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not ErrorResponse JSON still produce an error keyed on the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:    resp.StatusCode,
			Code:          errResp.Error,
			Description:   errResp.ErrorDescription,
			CurrentStatus: errResp.CurrentStatus,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
