package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/store"
	"github.com/aussiebroadwan/janus/pkg/idx"
	"github.com/aussiebroadwan/janus/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Clock Clock
}

type RegisterParams struct {
	DisplayName         string
	Email               string
	CredentialReference *string
	PublicKey           *string
}

// Register enrolls a new user. The email must not already be registered;
// on conflict the existing record is left untouched.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	displayName := strings.TrimSpace(p.DisplayName)
	email := strings.TrimSpace(p.Email)
	if displayName == "" {
		return domain.User{}, fmt.Errorf("%w: displayName is required", ErrValidation)
	}
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	u := domain.User{
		ID:                  idx.New().String(),
		DisplayName:         displayName,
		Email:               email,
		CredentialReference: nonEmpty(p.CredentialReference),
		PublicKey:           nonEmpty(p.PublicKey),
		EnrolledAt:          s.Clock.now(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID, "has_credential", u.HasCredential())
	return u, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return u, err
}

// List returns every user, most recently enrolled first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// AttachCredential records the credential produced by the device's
// enrollment ceremony. A nil publicKey keeps the stored one.
func (s *UserService) AttachCredential(
	ctx context.Context,
	userID, credentialReference string,
	publicKey *string,
) (domain.User, error) {
	credentialReference = strings.TrimSpace(credentialReference)
	if credentialReference == "" {
		return domain.User{}, fmt.Errorf("%w: credentialReference is required", ErrValidation)
	}

	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().AttachCredential(ctx, userID, credentialReference, nonEmpty(publicKey)); err != nil {
			return err
		}
		var err error
		u, err = tx.Users().GetUserByID(ctx, userID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("credential attached", "user_id", userID)
	return u, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
