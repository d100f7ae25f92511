package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/store"
)

const userColumns = `id, display_name, email, credential_reference, public_key, enrolled_at`

type usersRepo struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u          domain.User
		credential sql.NullString
		publicKey  sql.NullString
		enrolledAt string
	)
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &credential, &publicKey, &enrolledAt); err != nil {
		return domain.User{}, err
	}

	t, err := parseTime(enrolledAt)
	if err != nil {
		return domain.User{}, err
	}
	u.EnrolledAt = t
	u.CredentialReference = mapNullStringPtr(credential)
	u.PublicKey = mapNullStringPtr(publicKey)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.DisplayName, u.Email,
		mapOptionalString(u.CredentialReference),
		mapOptionalString(u.PublicKey),
		formatTime(u.EnrolledAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY enrolled_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) AttachCredential(
	ctx context.Context,
	userID, credentialReference string,
	publicKey *string,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET credential_reference = ?, public_key = COALESCE(?, public_key) WHERE id = ?`,
		credentialReference, mapOptionalString(publicKey), userID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
