package janussdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register enrolls a user and returns the new user id.
func (c *SDKClient) Register(ctx context.Context, req RegisterUserRequest) (string, error) {
	var resp RegisterUserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/users", req, &resp, http.StatusCreated); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// GetUser fetches a user by id.
func (c *SDKClient) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users, most recently enrolled first.
func (c *SDKClient) ListUsers(ctx context.Context) ([]User, error) {
	var resp ListUsersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// AttachCredential records a device credential for the user.
func (c *SDKClient) AttachCredential(ctx context.Context, userID string, req AttachCredentialRequest) (*User, error) {
	var u User
	path := "/v1/users/" + url.PathEscape(userID) + "/credential"
	if err := c.doJSON(ctx, http.MethodPut, path, req, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}
