package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement it. Sub-repositories are exposed as methods so a Tx can hand out
// the same repos bound to the transaction.
type Store interface {
	Users() Users
	AuthRequests() AuthRequests

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is the transaction-scoped view of a Store.
type Tx interface {
	Users() Users
	AuthRequests() AuthRequests
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email
	// is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// ListUsers returns all users, most recently enrolled first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// AttachCredential sets the credential reference and public key. It is
	// the only mutation a user record ever sees.
	AttachCredential(ctx context.Context, userID, credentialReference string, publicKey *string) error

	// CountUsers returns the number of enrolled users.
	CountUsers(ctx context.Context) (int, error)
}

type AuthRequests interface {
	// InsertAuthRequest stores a new record. The caller supplies id, status
	// and timestamps.
	InsertAuthRequest(ctx context.Context, r domain.AuthRequest) error

	// GetAuthRequest returns a request by id.
	GetAuthRequest(ctx context.Context, id string) (domain.AuthRequest, error)

	// UpdateStatusIfPending is an atomic compare-and-set: it writes status and
	// resolved_at in one statement, only if the stored status is pending.
	// Returns false, and leaves the record untouched, otherwise.
	UpdateStatusIfPending(ctx context.Context, id string, status domain.RequestStatus, resolvedAt time.Time) (bool, error)

	// FindLatestPendingForUser returns the newest pending request for the
	// user. Ties on created_at go to the later insert. ErrNotFound when none.
	FindLatestPendingForUser(ctx context.Context, userID string) (domain.AuthRequest, error)

	// ListRecentAuthRequests returns the newest requests joined with their
	// owner, up to limit.
	ListRecentAuthRequests(ctx context.Context, limit int) ([]domain.AuthRequestLog, error)

	// CountByStatus groups every request by status.
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)

	// CountPendingOlderThan counts pending requests created before t.
	CountPendingOlderThan(ctx context.Context, t time.Time) (int, error)
}
