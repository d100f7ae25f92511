package janussdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Errors and Health
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g., "not_found", "stale_state")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// CurrentStatus is set on stale_state errors to the status the request
	// already holds.
	CurrentStatus string `json:"current_status,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency state on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Users
// ============================================================================

// RegisterUserRequest enrolls a new user. The credential fields come from the
// device's enrollment ceremony and may be attached later instead.
type RegisterUserRequest struct {
	DisplayName         string  `json:"displayName"`
	Email               string  `json:"email"`
	CredentialReference *string `json:"credentialReference,omitempty"`
	PublicKey           *string `json:"publicKey,omitempty"`
}

type RegisterUserResponse struct {
	UserID string `json:"userId"`
}

// User is an enrolled identity.
type User struct {
	ID                  string    `json:"id"`
	DisplayName         string    `json:"displayName"`
	Email               string    `json:"email"`
	CredentialReference *string   `json:"credentialReference,omitempty"`
	PublicKey           *string   `json:"publicKey,omitempty"`
	EnrolledAt          time.Time `json:"enrolledAt"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// AttachCredentialRequest sets the credential reference for a user. A nil
// PublicKey keeps the stored one.
type AttachCredentialRequest struct {
	CredentialReference string  `json:"credentialReference"`
	PublicKey           *string `json:"publicKey,omitempty"`
}

// ============================================================================
// Auth Requests
// ============================================================================

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// CreateAuthRequestRequest raises a new approval request. Amount is encoded
// as a JSON string to keep its exact precision.
type CreateAuthRequestRequest struct {
	UserID      string           `json:"userId"`
	Kind        string           `json:"kind"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// AuthRequest is a single approval decision and its current state.
type AuthRequest struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Kind        string           `json:"kind"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	ResolvedAt  *time.Time       `json:"resolvedAt,omitempty"`
}

// PendingResponse is what a device receives from a poll. Request is set
// exactly when Pending is true.
type PendingResponse struct {
	Pending bool         `json:"pending"`
	Request *AuthRequest `json:"request,omitempty"`
}

// ============================================================================
// Admin
// ============================================================================

// LogEntry is an auth request joined with its owner.
type LogEntry struct {
	AuthRequest
	UserDisplayName string `json:"userDisplayName"`
	UserEmail       string `json:"userEmail"`
}

type LogsResponse struct {
	Logs []LogEntry `json:"logs"`
}

type StatsResponse struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalRequests int     `json:"totalRequests"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	Pending       int     `json:"pending"`
	SuccessRate   float64 `json:"successRate"`
}
