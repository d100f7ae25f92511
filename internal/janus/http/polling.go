package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
	"github.com/aussiebroadwan/janus/pkg/slogx"
)

// PollingHandler serves the device side: discovering pending requests and
// submitting decisions.
type PollingHandler struct {
	Gateway     *service.PollingGateway
	MaxPollWait time.Duration
}

// HandlePending reports the newest pending request for a user
//
//	@Summary		Check for a pending request
//	@Description	Returns the newest pending request for the user. The answer is the same on every poll until the request is resolved.
//	@Description	With wait (e.g. "25s" or "25"), the call blocks until a request arrives or the wait elapses. The server caps wait.
//	@Tags			Polling
//	@Produce		json
//	@Param			userId	query		string						true	"User ID"
//	@Param			wait	query		string						false	"Long-poll duration"
//	@Success		200		{object}	janussdk.PendingResponse	"Pending request, if any"
//	@Failure		400		{object}	janussdk.ErrorResponse		"Missing userId or bad wait"
//	@Failure		429		{object}	janussdk.ErrorResponse		"Rate limit exceeded"
//	@Failure		500		{object}	janussdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth-requests/pending [get].
func (h *PollingHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID := q.Get("userId")
	if userID == "" {
		httpx.WriteError(w, http.StatusBadRequest, janussdk.ErrorCodeValidation, "userId is required")
		return
	}

	wait, ok := parseWait(q.Get("wait"))
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, janussdk.ErrorCodeValidation, "wait must be a non-negative duration")
		return
	}
	wait = min(wait, h.MaxPollWait)

	ctx := slogx.With(r.Context(), "user_id", userID)

	var (
		ar    domain.AuthRequest
		found bool
		err   error
	)
	if wait > 0 {
		ar, found, err = h.Gateway.WaitPending(ctx, userID, wait)
	} else {
		ar, found, err = h.Gateway.CheckPending(ctx, userID)
	}
	if err != nil {
		writeServiceError(w, r.WithContext(ctx), err, "check pending requests")
		return
	}

	resp := janussdk.PendingResponse{Pending: found}
	if found {
		req := toAuthRequestResponse(ar)
		resp.Request = &req
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// parseWait accepts a Go duration ("25s") or a bare number of seconds.
func parseWait(s string) (time.Duration, bool) {
	if s == "" {
		return 0, true
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, secs >= 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// HandleApprove approves a pending request
//
//	@Summary		Approve an auth request
//	@Description	Resolves a pending request as approved. Fails with stale_state if the request was already resolved, including by an earlier approve.
//	@Tags			Polling
//	@Produce		json
//	@Param			id	path		string					true	"Auth request ID"
//	@Success		200	{object}	janussdk.AuthRequest	"Resolved request"
//	@Failure		404	{object}	janussdk.ErrorResponse	"Request not found"
//	@Failure		409	{object}	janussdk.ErrorResponse	"Request already resolved"
//	@Failure		429	{object}	janussdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500	{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth-requests/{id}/approve [post].
func (h *PollingHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, string(domain.DecisionApprove))
}

// HandleReject rejects a pending request
//
//	@Summary		Reject an auth request
//	@Description	Resolves a pending request as rejected. Fails with stale_state if the request was already resolved.
//	@Tags			Polling
//	@Produce		json
//	@Param			id	path		string					true	"Auth request ID"
//	@Success		200	{object}	janussdk.AuthRequest	"Resolved request"
//	@Failure		404	{object}	janussdk.ErrorResponse	"Request not found"
//	@Failure		409	{object}	janussdk.ErrorResponse	"Request already resolved"
//	@Failure		429	{object}	janussdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500	{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth-requests/{id}/reject [post].
func (h *PollingHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, string(domain.DecisionReject))
}

func (h *PollingHandler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	ar, err := h.Gateway.SubmitDecision(r.Context(), r.PathValue("id"), decision)
	if err != nil {
		writeServiceError(w, r, err, decision+" auth request")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthRequestResponse(ar))
}
