package janussdk

import (
	"context"
	"net/http"
	"strconv"
)

// Logs returns the most recent requests with their owners. limit <= 0 uses
// the server default.
func (c *SDKClient) Logs(ctx context.Context, limit int) ([]LogEntry, error) {
	path := "/v1/admin/logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp LogsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// Stats returns aggregate counts.
func (c *SDKClient) Stats(ctx context.Context) (*StatsResponse, error) {
	var stats StatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/admin/stats", nil, &stats, http.StatusOK); err != nil {
		return nil, err
	}
	return &stats, nil
}
