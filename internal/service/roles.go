package service

import (
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
)

// RoleResolver decides which side of a transaction an actor is on.
type RoleResolver interface {
	ResolveRole(txn *models.Transaction, actorID uuid.UUID) models.Role
}

// ParticipantResolver derives the role from the transaction's own buyer and seller ids.
type ParticipantResolver struct{}

// ResolveRole returns RoleBuyer, RoleSeller or RoleUnauthorized.
func (ParticipantResolver) ResolveRole(txn *models.Transaction, actorID uuid.UUID) models.Role {
	switch {
	case actorID == uuid.Nil:
		return models.RoleUnauthorized
	case actorID == txn.BuyerID:
		return models.RoleBuyer
	case actorID == txn.SellerID:
		return models.RoleSeller
	default:
		return models.RoleUnauthorized
	}
}
