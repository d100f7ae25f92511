package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/store"
	"github.com/shopspring/decimal"
)

const authRequestColumns = `ar.id, ar.user_id, ar.kind, ar.amount, ar.description, ar.status, ar.created_at, ar.resolved_at`

type authRequestsRepo struct {
	db dbtx
}

func scanAuthRequest(row rowScanner, extra ...any) (domain.AuthRequest, error) {
	var (
		ar          domain.AuthRequest
		amount      decimal.NullDecimal
		description sql.NullString
		status      string
		createdAt   string
		resolvedAt  sql.NullString
	)

	dest := append([]any{&ar.ID, &ar.UserID, &ar.Kind, &amount, &description, &status, &createdAt, &resolvedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.AuthRequest{}, err
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return domain.AuthRequest{}, err
	}
	ar.CreatedAt = t

	if ar.ResolvedAt, err = parseNullTime(resolvedAt); err != nil {
		return domain.AuthRequest{}, err
	}

	if amount.Valid {
		d := amount.Decimal
		ar.Amount = &d
	}
	ar.Description = mapNullStringPtr(description)
	ar.Status = domain.RequestStatus(status)
	return ar, nil
}

func (r *authRequestsRepo) InsertAuthRequest(ctx context.Context, ar domain.AuthRequest) error {
	var amount decimal.NullDecimal
	if ar.Amount != nil {
		amount = decimal.NewNullDecimal(*ar.Amount)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_requests (id, user_id, kind, amount, description, status, created_at, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ar.ID, ar.UserID, ar.Kind, amount,
		mapOptionalString(ar.Description),
		string(ar.Status),
		formatTime(ar.CreatedAt),
		formatOptionalTime(ar.ResolvedAt),
	)
	return mapConstraint(err)
}

func (r *authRequestsRepo) GetAuthRequest(ctx context.Context, id string) (domain.AuthRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+authRequestColumns+` FROM auth_requests ar WHERE ar.id = ?`, id)
	ar, err := scanAuthRequest(row)
	if err != nil {
		return domain.AuthRequest{}, mapNotFound(err)
	}
	return ar, nil
}

func (r *authRequestsRepo) UpdateStatusIfPending(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
	resolvedAt time.Time,
) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auth_requests SET status = ?, resolved_at = ?
		 WHERE id = ? AND status = 'pending'`,
		string(status), formatTime(resolvedAt), id,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *authRequestsRepo) FindLatestPendingForUser(ctx context.Context, userID string) (domain.AuthRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+authRequestColumns+` FROM auth_requests ar
		 WHERE ar.user_id = ? AND ar.status = 'pending'
		 ORDER BY ar.created_at DESC, ar.rowid DESC
		 LIMIT 1`, userID)
	ar, err := scanAuthRequest(row)
	if err != nil {
		return domain.AuthRequest{}, mapNotFound(err)
	}
	return ar, nil
}

func (r *authRequestsRepo) ListRecentAuthRequests(ctx context.Context, limit int) ([]domain.AuthRequestLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+authRequestColumns+`, COALESCE(u.display_name, ''), COALESCE(u.email, '')
		 FROM auth_requests ar
		 LEFT JOIN users u ON ar.user_id = u.id
		 ORDER BY ar.created_at DESC, ar.rowid DESC
		 LIMIT ?`, limit)
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
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM auth_requests GROUP BY status`)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	defer rows.Close()

	var counts domain.StatusCounts
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return domain.StatusCounts{}, err
		}
		switch domain.RequestStatus(status) {
		case domain.StatusPending:
			counts.Pending = n
		case domain.StatusApproved:
			counts.Approved = n
		case domain.StatusRejected:
			counts.Rejected = n
		default:
			return domain.StatusCounts{}, errors.New("sqlite: unknown auth request status " + status)
		}
	}
	return counts, rows.Err()
}

func (r *authRequestsRepo) CountPendingOlderThan(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM auth_requests WHERE status = 'pending' AND created_at < ?`,
		formatTime(t),
	).Scan(&n)
	return n, err
}

var _ store.AuthRequests = (*authRequestsRepo)(nil)
