package service

import (
	"context"
	"math"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/internal/janus/store"
)

// MaxLogEntries caps the audit view.
const MaxLogEntries = 100

type AdminService struct {
	Store store.Store
}

type Stats struct {
	TotalUsers    int
	TotalRequests int
	Approved      int
	Rejected      int
	Pending       int
	SuccessRate   float64 // percent approved, one decimal place
}

// Logs returns the most recent requests with their owners. A limit outside
// (0, MaxLogEntries] means MaxLogEntries.
func (s *AdminService) Logs(ctx context.Context, limit int) ([]domain.AuthRequestLog, error) {
	if limit <= 0 || limit > MaxLogEntries {
		limit = MaxLogEntries
	}
	return s.Store.AuthRequests().ListRecentAuthRequests(ctx, limit)
}

// Stats counts users and requests from a single transaction.
func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	var (
		users  int
		counts domain.StatusCounts
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if users, err = tx.Users().CountUsers(ctx); err != nil {
			return err
		}
		counts, err = tx.AuthRequests().CountByStatus(ctx)
		return err
	})
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalUsers:    users,
		TotalRequests: counts.Total(),
		Approved:      counts.Approved,
		Rejected:      counts.Rejected,
		Pending:       counts.Pending,
		SuccessRate:   successRate(counts.Approved, counts.Total()),
	}, nil
}

func successRate(approved, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(approved)/float64(total)*1000) / 10
}
