package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of an AuthRequest.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether a request may move from one status to another.
// Only pending requests move, and only into a terminal status.
func CanTransition(from, to RequestStatus) bool {
	return from == StatusPending && to.Terminal()
}

// AuthRequest is a single approval decision raised by a relying party.
//
// ResolvedAt is non-nil exactly when Status is terminal. Once terminal the
// record is immutable; it is kept forever as an audit entry.
type AuthRequest struct {
	ID          string
	UserID      string
	Kind        string           // free-form, e.g. "login", "payment"
	Amount      *decimal.Decimal // nullable, no currency semantics
	Description *string          // nullable
	Status      RequestStatus
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

func (r AuthRequest) IsPending() bool { return r.Status == StatusPending }

// Decision is what a device submits for a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision accepts "approve"/"reject" case-insensitively.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionApprove:
		return DecisionApprove, true
	case DecisionReject:
		return DecisionReject, true
	}
	return "", false
}

// Status is the terminal status the decision resolves to.
func (d Decision) Status() RequestStatus {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// AuthRequestLog is an AuthRequest joined with its owner for the audit view.
type AuthRequestLog struct {
	AuthRequest
	UserDisplayName string
	UserEmail       string
}

// StatusCounts is the number of requests in each status.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}

func (c StatusCounts) Total() int { return c.Pending + c.Approved + c.Rejected }
