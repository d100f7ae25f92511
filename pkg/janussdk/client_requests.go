package janussdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateRequest raises a pending auth request for a user.
func (c *SDKClient) CreateRequest(ctx context.Context, req CreateAuthRequestRequest) (*AuthRequest, error) {
	var ar AuthRequest
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth-requests", req, &ar, http.StatusCreated); err != nil {
		return nil, err
	}
	return &ar, nil
}

// GetRequest returns the current state of a request. Relying parties poll
// this to learn the outcome.
func (c *SDKClient) GetRequest(ctx context.Context, id string) (*AuthRequest, error) {
	var ar AuthRequest
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth-requests/"+url.PathEscape(id), nil, &ar, http.StatusOK); err != nil {
		return nil, err
	}
	return &ar, nil
}

// CheckPending returns the newest pending request for userID, or nil.
func (c *SDKClient) CheckPending(ctx context.Context, userID string) (*AuthRequest, error) {
	return c.WaitPending(ctx, userID, 0)
}

// WaitPending is CheckPending as a long poll: the server holds the request
// for up to wait until something is pending. The server caps wait.
func (c *SDKClient) WaitPending(ctx context.Context, userID string, wait time.Duration) (*AuthRequest, error) {
	q := url.Values{"userId": {userID}}
	if wait > 0 {
		q.Set("wait", wait.String())
	}

	var resp PendingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth-requests/pending?"+q.Encode(), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	if !resp.Pending {
		return nil, nil
	}
	return resp.Request, nil
}

// Approve resolves a pending request as approved. A request that is already
// resolved yields an error for which IsStaleState is true.
func (c *SDKClient) Approve(ctx context.Context, id string) (*AuthRequest, error) {
	return c.decide(ctx, id, "approve")
}

// Reject resolves a pending request as rejected.
func (c *SDKClient) Reject(ctx context.Context, id string) (*AuthRequest, error) {
	return c.decide(ctx, id, "reject")
}

func (c *SDKClient) decide(ctx context.Context, id, decision string) (*AuthRequest, error) {
	var ar AuthRequest
	path := "/v1/auth-requests/" + url.PathEscape(id) + "/" + decision
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &ar, http.StatusOK); err != nil {
		return nil, err
	}
	return &ar, nil
}
