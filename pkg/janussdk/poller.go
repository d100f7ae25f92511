package janussdk

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is how often a device checks for pending requests.
const DefaultPollInterval = 3 * time.Second

// Poller is the device side of the polling protocol. Polls are
// level-triggered, so a failed or dropped poll only delays discovery.
type Poller struct {
	Client *SDKClient
	UserID string

	// Interval between polls. Defaults to DefaultPollInterval.
	Interval time.Duration

	// Wait, when positive, turns each poll into a long poll.
	Wait time.Duration

	// Logger receives poll failures. Defaults to slog.Default().
	Logger *slog.Logger
}

func (p *Poller) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultPollInterval
	}
	return p.Interval
}

func (p *Poller) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Next blocks until a request is pending for the user or ctx is done.
func (p *Poller) Next(ctx context.Context) (*AuthRequest, error) {
	log := p.logger()

	for {
		ar, err := p.Client.WaitPending(ctx, p.UserID, p.Wait)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			log.Warn("poll failed", "user_id", p.UserID, "error", err)
		case ar != nil:
			return ar, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval()):
		}
	}
}

// Run hands every pending request to handle until ctx is done. A request
// stays pending until someone decides it, so handle will see it again if it
// returns without approving or rejecting.
func (p *Poller) Run(ctx context.Context, handle func(context.Context, *AuthRequest) error) error {
	for {
		ar, err := p.Next(ctx)
		if err != nil {
			return err
		}
		if err := handle(ctx, ar); err != nil {
			p.logger().Warn("pending request handler failed", "request_id", ar.ID, "error", err)

			// Back off before the request is offered again.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.interval()):
			}
		}
	}
}
