package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the negotiation status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending     TransactionStatus = "PENDING"
	TransactionStatusNegotiating TransactionStatus = "NEGOTIATING"
	TransactionStatusScheduled   TransactionStatus = "SCHEDULED"
	TransactionStatusCompleted   TransactionStatus = "COMPLETED"
	TransactionStatusCancelled   TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further mutation is permitted from this status.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusCancelled
}

// Role identifies which side of a transaction an actor is on.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	// RoleNone is only used for ProposedBy when no proposal is outstanding.
	RoleNone Role = "NONE"
	// RoleUnauthorized is returned by role resolution for non-participants.
	RoleUnauthorized Role = "UNAUTHORIZED"
)

// Counterpart returns the other participant role.
func (r Role) Counterpart() Role {
	switch r {
	case RoleBuyer:
		return RoleSeller
	case RoleSeller:
		return RoleBuyer
	default:
		return RoleNone
	}
}

// IsParticipant reports whether the role is buyer or seller.
func (r Role) IsParticipant() bool {
	return r == RoleBuyer || r == RoleSeller
}

// PaymentMethod is the buyer-chosen payment label. No money moves through this service.
type PaymentMethod string

const (
	PaymentMethodVenmo PaymentMethod = "VENMO"
	PaymentMethodZelle PaymentMethod = "ZELLE"
	PaymentMethodCash  PaymentMethod = "CASH"
)

// IsValid reports whether p is one of the known payment methods.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodVenmo, PaymentMethodZelle, PaymentMethodCash:
		return true
	}
	return false
}

// DeliveryMethod describes how the item changes hands.
type DeliveryMethod string

const (
	DeliveryMethodMeetup DeliveryMethod = "MEETUP"
	DeliveryMethodPickup DeliveryMethod = "PICKUP"
)

// IsValid reports whether d is one of the known delivery methods.
func (d DeliveryMethod) IsValid() bool {
	return d == DeliveryMethodMeetup || d == DeliveryMethodPickup
}

// Transaction is the negotiated sale of a single listing between a buyer and its seller.
//
// Empty PaymentMethod, DeliveryMethod and MeetLocation mean unset, as does a nil MeetTime.
type Transaction struct {
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
	MeetTime       *time.Time        `db:"meet_time"`
	MeetLocation   string            `db:"meet_location"`
	Status         TransactionStatus `db:"status"`
	ProposedBy     Role              `db:"proposed_by"`
	PaymentMethod  PaymentMethod     `db:"payment_method"`
	DeliveryMethod DeliveryMethod    `db:"delivery_method"`
	Version        int64             `db:"version"`
	ID             uuid.UUID         `db:"id"`
	ListingID      uuid.UUID         `db:"listing_id"`
	BuyerID        uuid.UUID         `db:"buyer_id"`
	SellerID       uuid.UUID         `db:"seller_id"`
}

// Clone returns a deep copy so callers can compute a next state without
// touching a record shared with the store or another request.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.MeetTime != nil {
		mt := *t.MeetTime
		c.MeetTime = &mt
	}
	return &c
}
