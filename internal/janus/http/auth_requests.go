package http

import (
	"net/http"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
)

// AuthRequestsHandler serves the relying-party side: raising requests and
// reading their outcome.
type AuthRequestsHandler struct {
	RequestService *service.RequestService
}

// HandleCreate raises an auth request
//
//	@Summary		Create an auth request
//	@Description	Raises a pending approval request for a user. Devices long-polling for the user are woken.
//	@Tags			AuthRequests
//	@Accept			json
//	@Produce		json
//	@Param			request	body		janussdk.CreateAuthRequestRequest	true	"Request to raise"
//	@Success		201		{object}	janussdk.AuthRequest				"Created request"
//	@Failure		400		{object}	janussdk.ErrorResponse				"Unknown user"
//	@Failure		429		{object}	janussdk.ErrorResponse				"Rate limit exceeded"
//	@Failure		500		{object}	janussdk.ErrorResponse				"Internal server error"
//	@Router			/v1/auth-requests [post].
func (h *AuthRequestsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req janussdk.CreateAuthRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ar, err := h.RequestService.Create(r.Context(), service.CreateRequestParams{
		UserID:      req.UserID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "create auth request")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthRequestResponse(ar))
}

// HandleGet returns a request's current state
//
//	@Summary		Get an auth request
//	@Tags			AuthRequests
//	@Produce		json
//	@Param			id	path		string					true	"Auth request ID"
//	@Success		200	{object}	janussdk.AuthRequest	"Request"
//	@Failure		404	{object}	janussdk.ErrorResponse	"Request not found"
//	@Failure		500	{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth-requests/{id} [get].
func (h *AuthRequestsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ar, err := h.RequestService.StatusOf(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "get auth request")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthRequestResponse(ar))
}
