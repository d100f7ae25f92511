package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/janus/internal/janus/domain"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// StaleStateError is returned when a decision targets a request that has
// already left pending. Current is the status it holds now.
type StaleStateError struct {
	RequestID string
	Current   domain.RequestStatus
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("auth request %s is already %s", e.RequestID, e.Current)
}
