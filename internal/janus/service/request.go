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
	"github.com/shopspring/decimal"
)

// RequestService owns the auth request lifecycle. Every status change goes
// through the store's compare-and-set, so concurrent decisions on the same
// request resolve to exactly one winner.
type RequestService struct {
	Store    store.Store
	Notifier Notifier
	Metrics  *Metrics
	Clock    Clock
}

type CreateRequestParams struct {
	UserID      string
	Kind        string
	Amount      *decimal.Decimal
	Description *string
}

// Create raises a new pending request for an existing user and wakes any
// device long-polling for that user.
func (s *RequestService) Create(ctx context.Context, p CreateRequestParams) (domain.AuthRequest, error) {
	// Kind and amount are the relying party's business: an empty kind or a
	// negative amount (a refund) is stored as given.
	if strings.TrimSpace(p.UserID) == "" {
		return domain.AuthRequest{}, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	if _, err := s.Store.Users().GetUserByID(ctx, p.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthRequest{}, fmt.Errorf("%w: unknown user %s", ErrValidation, p.UserID)
		}
		return domain.AuthRequest{}, err
	}

	now := s.Clock.now()
	ar := domain.AuthRequest{
		ID:          idx.NewAt(now).String(),
		UserID:      p.UserID,
		Kind:        p.Kind,
		Amount:      p.Amount,
		Description: nonEmpty(p.Description),
		Status:      domain.StatusPending,
		CreatedAt:   now,
	}
	if err := s.Store.AuthRequests().InsertAuthRequest(ctx, ar); err != nil {
		return domain.AuthRequest{}, err
	}

	log := slogx.FromContext(ctx)
	log.Info("auth request created", "request_id", ar.ID, "user_id", ar.UserID, "kind", ar.Kind)
	s.Metrics.requestCreated(p.Kind)

	if s.Notifier != nil {
		if err := s.Notifier.Publish(ctx, ar.UserID); err != nil {
			// Waiters fall back to their next poll.
			log.Warn("failed to publish pending signal", "user_id", ar.UserID, "error", err)
		}
	}

	return ar, nil
}

// Approve moves a pending request to approved.
func (s *RequestService) Approve(ctx context.Context, id string) (domain.AuthRequest, error) {
	return s.resolve(ctx, id, domain.StatusApproved)
}

// Reject moves a pending request to rejected.
func (s *RequestService) Reject(ctx context.Context, id string) (domain.AuthRequest, error) {
	return s.resolve(ctx, id, domain.StatusRejected)
}

// resolve is not idempotent: repeating a decision, even the
// same one, reports StaleStateError.
func (s *RequestService) resolve(ctx context.Context, id string, to domain.RequestStatus) (domain.AuthRequest, error) {
	if !domain.CanTransition(domain.StatusPending, to) {
		return domain.AuthRequest{}, fmt.Errorf("%w: cannot resolve to %s", ErrValidation, to)
	}
	if !idx.Valid(id) {
		s.Metrics.decision(string(to), "not_found")
		return domain.AuthRequest{}, fmt.Errorf("%w: auth request %s", ErrNotFound, id)
	}

	log := slogx.FromContext(ctx)

	ok, err := s.Store.AuthRequests().UpdateStatusIfPending(ctx, id, to, s.Clock.now())
	if err != nil {
		return domain.AuthRequest{}, err
	}

	ar, err := s.Store.AuthRequests().GetAuthRequest(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.decision(string(to), "not_found")
		return domain.AuthRequest{}, fmt.Errorf("%w: auth request %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.AuthRequest{}, err
	}

	if !ok {
		s.Metrics.decision(string(to), "stale")
		log.Info("decision on resolved auth request", "request_id", id, "wanted", to, "current", ar.Status)
		return domain.AuthRequest{}, &StaleStateError{RequestID: id, Current: ar.Status}
	}

	s.Metrics.decision(string(to), "applied")
	log.Info("auth request resolved", "request_id", id, "user_id", ar.UserID, "status", ar.Status)
	return ar, nil
}

// StatusOf returns the current record for id.
func (s *RequestService) StatusOf(ctx context.Context, id string) (domain.AuthRequest, error) {
	if !idx.Valid(id) {
		return domain.AuthRequest{}, fmt.Errorf("%w: auth request %s", ErrNotFound, id)
	}

	ar, err := s.Store.AuthRequests().GetAuthRequest(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AuthRequest{}, fmt.Errorf("%w: auth request %s", ErrNotFound, id)
	}
	return ar, err
}

// PendingForUser returns the newest pending request for userID, if any.
func (s *RequestService) PendingForUser(ctx context.Context, userID string) (domain.AuthRequest, bool, error) {
	ar, err := s.Store.AuthRequests().FindLatestPendingForUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AuthRequest{}, false, nil
	}
	if err != nil {
		return domain.AuthRequest{}, false, err
	}
	return ar, true, nil
}
