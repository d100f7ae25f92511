package http

import (
	"net/http"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister enrolls a new user
//
//	@Summary		Register a user
//	@Description	Enrolls a user. Email must be unique; a duplicate leaves the existing user unchanged.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		janussdk.RegisterUserRequest	true	"User to register"
//	@Success		201		{object}	janussdk.RegisterUserResponse	"Created user id"
//	@Failure		400		{object}	janussdk.ErrorResponse			"Missing display name or email"
//	@Failure		409		{object}	janussdk.ErrorResponse			"Email already registered"
//	@Failure		429		{object}	janussdk.ErrorResponse			"Rate limit exceeded"
//	@Failure		500		{object}	janussdk.ErrorResponse			"Internal server error"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req janussdk.RegisterUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.Register(r.Context(), service.RegisterParams{
		DisplayName:         req.DisplayName,
		Email:               req.Email,
		CredentialReference: req.CredentialReference,
		PublicKey:           req.PublicKey,
	})
	if err != nil {
		writeServiceError(w, r, err, "register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, janussdk.RegisterUserResponse{UserID: u.ID})
}

// HandleList lists users
//
//	@Summary		List users
//	@Description	Returns every enrolled user, most recently enrolled first.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	janussdk.ListUsersResponse	"Users"
//	@Failure		500	{object}	janussdk.ErrorResponse		"Internal server error"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list users")
		return
	}

	resp := janussdk.ListUsersResponse{Users: make([]janussdk.User, len(users))}
	for i, u := range users {
		resp.Users[i] = toUserResponse(u)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet fetches one user
//
//	@Summary		Get a user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	janussdk.User			"User"
//	@Failure		404	{object}	janussdk.ErrorResponse	"User not found"
//	@Failure		500	{object}	janussdk.ErrorResponse	"Internal server error"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "get user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleAttachCredential records a device credential
//
//	@Summary		Attach a credential
//	@Description	Stores the opaque credential reference (and optionally public key) produced by the device's enrollment ceremony.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		janussdk.AttachCredentialRequest	true	"Credential"
//	@Success		200		{object}	janussdk.User					"Updated user"
//	@Failure		400		{object}	janussdk.ErrorResponse			"Missing credential reference"
//	@Failure		404		{object}	janussdk.ErrorResponse			"User not found"
//	@Failure		500		{object}	janussdk.ErrorResponse			"Internal server error"
//	@Router			/v1/users/{id}/credential [put].
func (h *UsersHandler) HandleAttachCredential(w http.ResponseWriter, r *http.Request) {
	var req janussdk.AttachCredentialRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.AttachCredential(r.Context(), r.PathValue("id"), req.CredentialReference, req.PublicKey)
	if err != nil {
		writeServiceError(w, r, err, "attach credential")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
