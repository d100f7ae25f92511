package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
	"github.com/aussiebroadwan/janus/pkg/slogx"
)

const maxBodyBytes = 1 << 20

// writeServiceError maps a service error onto the response. action completes
// the sentence "Failed to ..." for unexpected errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := slogx.FromContext(r.Context())

	var stale *service.StaleStateError
	switch {
	case errors.As(err, &stale):
		httpx.WriteJSON(w, http.StatusConflict, janussdk.ErrorResponse{
			Error:            janussdk.ErrorCodeStaleState,
			ErrorDescription: stale.Error(),
			CurrentStatus:    string(stale.Current),
		})
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, janussdk.ErrorCodeValidation, describe(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, janussdk.ErrorCodeConflict, describe(err, service.ErrConflict))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, janussdk.ErrorCodeNotFound, describe(err, service.ErrNotFound))
	case errors.Is(err, context.Canceled):
		// The client is gone; nobody reads the response.
		log.Debug("request cancelled", "action", action)
	default:
		log.Error("failed to "+action, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, janussdk.ErrorCodeServerError, "Failed to "+action)
	}
}

// describe strips the sentinel prefix from a wrapped error message.
func describe(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// decodeBody reads a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, janussdk.ErrorCodeValidation, "Invalid JSON body")
		return false
	}
	return true
}
