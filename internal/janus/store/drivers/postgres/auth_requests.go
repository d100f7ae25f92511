package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// amount travels as text so the NUMERIC value keeps its exact scale.
const authRequestColumns = `ar.id, ar.user_id, ar.kind, ar.amount::text, ar.description, ar.status, ar.created_at, ar.resolved_at`

type authRequestsRepo struct {
	db dbtx
}

func scanAuthRequest(row pgx.Row, extra ...any) (domain.AuthRequest, error) {
	var (
		ar     domain.AuthRequest
		amount *string
		status string
	)

	dest := append([]any{&ar.ID, &ar.UserID, &ar.Kind, &amount, &ar.Description, &status, &ar.CreatedAt, &ar.ResolvedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.AuthRequest{}, err
	}

	if amount != nil {
		d, err := decimal.NewFromString(*amount)
		if err != nil {
			return domain.AuthRequest{}, fmt.Errorf("postgres: amount %q: %w", *amount, err)
		}
		ar.Amount = &d
	}

	ar.CreatedAt = ar.CreatedAt.UTC()
	if ar.ResolvedAt != nil {
		t := ar.ResolvedAt.UTC()
		ar.ResolvedAt = &t
	}
	ar.Status = domain.RequestStatus(status)
	return ar, nil
}

func (r *authRequestsRepo) InsertAuthRequest(ctx context.Context, ar domain.AuthRequest) error {
	var amount *string
	if ar.Amount != nil {
		s := ar.Amount.String()
		amount = &s
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_requests (id, user_id, kind, amount, description, status, created_at, resolved_at)
		 VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8)`,
		ar.ID, ar.UserID, ar.Kind, amount, ar.Description, string(ar.Status), ar.CreatedAt, ar.ResolvedAt,
	)
	return mapConstraint(err)
}

func (r *authRequestsRepo) GetAuthRequest(ctx context.Context, id string) (domain.AuthRequest, error) {
	ar, err := scanAuthRequest(r.db.QueryRow(ctx,
		`SELECT `+authRequestColumns+` FROM auth_requests ar WHERE ar.id = $1`, id))
	if err != nil {
		return domain.AuthRequest{}, mapNotFound(err)
	}
	return ar, nil
}

// UpdateStatusIfPending relies on the row lock taken by UPDATE: a second
// writer blocks, then re-evaluates the status predicate and matches nothing.
func (r *authRequestsRepo) UpdateStatusIfPending(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
	resolvedAt time.Time,
) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE auth_requests SET status = $1, resolved_at = $2
		 WHERE id = $3 AND status = 'pending'`,
		string(status), resolvedAt, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *authRequestsRepo) FindLatestPendingForUser(ctx context.Context, userID string) (domain.AuthRequest, error) {
	ar, err := scanAuthRequest(r.db.QueryRow(ctx,
		`SELECT `+authRequestColumns+` FROM auth_requests ar
		 WHERE ar.user_id = $1 AND ar.status = 'pending'
		 ORDER BY ar.created_at DESC, ar.seq DESC
		 LIMIT 1`, userID))
	if err != nil {
		return domain.AuthRequest{}, mapNotFound(err)
	}
	return ar, nil
}

func (r *authRequestsRepo) ListRecentAuthRequests(ctx context.Context, limit int) ([]domain.AuthRequestLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+authRequestColumns+`, COALESCE(u.display_name, ''), COALESCE(u.email, '')
		 FROM auth_requests ar
		 LEFT JOIN users u ON ar.user_id = u.id
		 ORDER BY ar.created_at DESC, ar.seq DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.AuthRequestLog{}
	for rows.Next() {
		var entry domain.AuthRequestLog
		ar, err := scanAuthRequest(rows, &entry.UserDisplayName, &entry.UserEmail)
		if err != nil {
			return nil, err
		}
		entry.AuthRequest = ar
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (r *authRequestsRepo) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	var counts domain.StatusCounts
	err := r.db.QueryRow(ctx,
		`SELECT
		    COUNT(*) FILTER (WHERE status = 'pending'),
		    COUNT(*) FILTER (WHERE status = 'approved'),
		    COUNT(*) FILTER (WHERE status = 'rejected')
		 FROM auth_requests`,
	).Scan(&counts.Pending, &counts.Approved, &counts.Rejected)
	return counts, err
}

func (r *authRequestsRepo) CountPendingOlderThan(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM auth_requests WHERE status = 'pending' AND created_at < $1`, t,
	).Scan(&n)
	return n, err
}
