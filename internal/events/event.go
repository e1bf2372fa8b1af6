// Package events publishes negotiation domain events for other marketplace services.
//
// The chat service renders them as system messages in the buyer/seller
// conversation and the listings service moves the listing between
// active, pending and sold.
package events

import (
	"time"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
)

// EventType identifies what happened to a transaction
type EventType string

const (
	EventTransactionInitiated EventType = "transaction.initiated"
	EventTermsProposed        EventType = "transaction.terms_proposed"
	EventTermsConfirmed       EventType = "transaction.terms_confirmed"
	EventTransactionCompleted EventType = "transaction.completed"
	EventTransactionCancelled EventType = "transaction.cancelled"
)

// TransactionEvent is a snapshot of a transaction right after a committed change
type TransactionEvent struct {
	OccurredAt     time.Time                `json:"occurred_at"`
	MeetTime       *time.Time               `json:"meet_time,omitempty"`
	Type           EventType                `json:"type"`
	Status         models.TransactionStatus `json:"status"`
	ProposedBy     models.Role              `json:"proposed_by"`
	PaymentMethod  models.PaymentMethod     `json:"payment_method,omitempty"`
	DeliveryMethod models.DeliveryMethod    `json:"delivery_method,omitempty"`
	MeetLocation   string                   `json:"meet_location,omitempty"`
	Version        int64                    `json:"version"`
	EventID        uuid.UUID                `json:"event_id"`
	TransactionID  uuid.UUID                `json:"transaction_id"`
	ListingID      uuid.UUID                `json:"listing_id"`
	BuyerID        uuid.UUID                `json:"buyer_id"`
	SellerID       uuid.UUID                `json:"seller_id"`
}

// NewTransactionEvent snapshots txn into an event of the given type
func NewTransactionEvent(eventType EventType, txn *models.Transaction, occurredAt time.Time) TransactionEvent {
	ev := TransactionEvent{
		EventID:        uuid.New(),
		Type:           eventType,
		TransactionID:  txn.ID,
		ListingID:      txn.ListingID,
		BuyerID:        txn.BuyerID,
		SellerID:       txn.SellerID,
		Status:         txn.Status,
		ProposedBy:     txn.ProposedBy,
		PaymentMethod:  txn.PaymentMethod,
		DeliveryMethod: txn.DeliveryMethod,
		MeetLocation:   txn.MeetLocation,
		Version:        txn.Version,
		OccurredAt:     occurredAt.UTC(),
	}
	if txn.MeetTime != nil {
		mt := txn.MeetTime.UTC()
		ev.MeetTime = &mt
	}
	return ev
}
