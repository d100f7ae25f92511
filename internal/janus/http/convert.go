package http

import (
	"github.com/aussiebroadwan/janus/internal/janus/domain"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
)

func toUserResponse(u domain.User) janussdk.User {
	return janussdk.User{
		ID:                  u.ID,
		DisplayName:         u.DisplayName,
		Email:               u.Email,
		CredentialReference: u.CredentialReference,
		PublicKey:           u.PublicKey,
		EnrolledAt:          u.EnrolledAt,
	}
}

func toAuthRequestResponse(ar domain.AuthRequest) janussdk.AuthRequest {
	return janussdk.AuthRequest{
		ID:          ar.ID,
		UserID:      ar.UserID,
		Kind:        ar.Kind,
		Amount:      ar.Amount,
		Description: ar.Description,
		Status:      string(ar.Status),
		CreatedAt:   ar.CreatedAt,
		ResolvedAt:  ar.ResolvedAt,
	}
}
