package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
)

// PollingGateway is the device-facing side of the lifecycle. Checks are
// level-triggered: a pending request is reported on every poll until it is
// resolved, so a device that misses a response loses nothing.
type PollingGateway struct {
	Requests *RequestService
	Notifier Notifier
	Metrics  *Metrics
	Clock    Clock

	// PendingTTL hides pending requests older than this from devices. The
	// record itself stays pending. Zero disables expiry.
	PendingTTL time.Duration
}

// CheckPending returns the newest pending request for userID, if any.
func (g *PollingGateway) CheckPending(ctx context.Context, userID string) (domain.AuthRequest, bool, error) {
	ar, ok, err := g.Requests.PendingForUser(ctx, userID)
	if err != nil {
		return domain.AuthRequest{}, false, err
	}

	// The newest pending request is the youngest, so if it is past the TTL
	// every older one is too.
	if ok && g.PendingTTL > 0 && g.Clock.now().Sub(ar.CreatedAt) > g.PendingTTL {
		ok = false
		ar = domain.AuthRequest{}
	}

	g.Metrics.pollCheck(ok)
	return ar, ok, nil
}

// SubmitDecision applies "approve" or "reject" to request id.
func (g *PollingGateway) SubmitDecision(ctx context.Context, id, decision string) (domain.AuthRequest, error) {
	d, ok := domain.ParseDecision(decision)
	if !ok {
		return domain.AuthRequest{}, fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	if d == domain.DecisionApprove {
		return g.Requests.Approve(ctx, id)
	}
	return g.Requests.Reject(ctx, id)
}

// WaitPending behaves like CheckPending but, when nothing is pending, blocks
// for up to timeout until a request arrives for userID.
func (g *PollingGateway) WaitPending(
	ctx context.Context,
	userID string,
	timeout time.Duration,
) (domain.AuthRequest, bool, error) {
	ar, ok, err := g.CheckPending(ctx, userID)
	if err != nil || ok || timeout <= 0 || g.Notifier == nil {
		return ar, ok, err
	}

	signal, cancel, err := g.Notifier.Subscribe(ctx, userID)
	if err != nil {
		return domain.AuthRequest{}, false, err
	}
	defer cancel()

	g.Metrics.waiterAdded()
	defer g.Metrics.waiterDone()

	// A request created between the first check and Subscribe sent its
	// signal to nobody.
	ar, ok, err = g.CheckPending(ctx, userID)
	if err != nil || ok {
		return ar, ok, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			ar, ok, err = g.CheckPending(ctx, userID)
			if err != nil || ok {
				return ar, ok, err
			}
		case <-timer.C:
			return g.CheckPending(ctx, userID)
		case <-ctx.Done():
			return domain.AuthRequest{}, false, ctx.Err()
		}
	}
}
