package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleLogs lists recent requests
//
//	@Summary		Recent auth requests
//	@Description	Returns the most recent requests with their owner's name and email. limit defaults to, and is capped at, 100.
//	@Tags			Admin
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum entries"
//	@Success		200		{object}	janussdk.LogsResponse	"Log entries"
//	@Failure		400		{object}	janussdk.ErrorResponse	"Bad limit"
//	@Failure		500		{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/admin/logs [get].
func (h *AdminHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, janussdk.ErrorCodeValidation, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	logs, err := h.AdminService.Logs(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "list logs")
		return
	}

	resp := janussdk.LogsResponse{Logs: make([]janussdk.LogEntry, len(logs))}
	for i, l := range logs {
		resp.Logs[i] = janussdk.LogEntry{
			AuthRequest:     toAuthRequestResponse(l.AuthRequest),
			UserDisplayName: l.UserDisplayName,
			UserEmail:       l.UserEmail,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleStats returns aggregate counts
//
//	@Summary		Service statistics
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	janussdk.StatsResponse	"Counts and success rate"
//	@Failure		500	{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "compute stats")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, janussdk.StatsResponse{
		TotalUsers:    stats.TotalUsers,
		TotalRequests: stats.TotalRequests,
		Approved:      stats.Approved,
		Rejected:      stats.Rejected,
		Pending:       stats.Pending,
		SuccessRate:   stats.SuccessRate,
	})
}
