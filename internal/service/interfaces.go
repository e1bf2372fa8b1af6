package service

import (
	"context"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// TransactionStore persists transactions with optimistic concurrency.
//
// Load returns models.ErrNotFound for unknown ids. CompareAndSwap returns
// models.ErrVersionConflict when the stored version is not expectedVersion;
// on success the returned record carries version expectedVersion+1.
type TransactionStore interface {
	Create(ctx context.Context, txn *models.Transaction) error
	Load(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	CompareAndSwap(ctx context.Context, id uuid.UUID, expectedVersion int64, next *models.Transaction) (*models.Transaction, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
}

// ReviewStore persists the single review of a transaction, keyed by transaction id.
//
// Create returns models.ErrDuplicateReview when the transaction already has
// one; the other methods return models.ErrNotFound when it has none.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, transactionID uuid.UUID) error
}

// ListingLookup reads listing display data owned by the listings service.
type ListingLookup interface {
	GetListing(ctx context.Context, listingID uuid.UUID) (*models.Listing, error)
}

// ProfileDirectory reads participant profiles owned by the profile service.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// Purchaser opens a transaction on a listing
type Purchaser interface {
	InitiatePurchase(ctx context.Context, listingID, buyerID uuid.UUID) (*models.Transaction, error)
}

// Negotiator drives a transaction through the negotiation state machine
type Negotiator interface {
	ProposeTerms(ctx context.Context, transactionID, actorID uuid.UUID, p Proposal) (*models.Transaction, error)
	ConfirmTerms(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error)
	MarkSold(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error)
	Cancel(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error)
}

// TransactionReader serves participant-scoped views of transactions
type TransactionReader interface {
	GetTransaction(ctx context.Context, transactionID, actorID uuid.UUID) (*TransactionView, error)
	ListTransactions(ctx context.Context, actorID uuid.UUID) ([]*TransactionView, error)
}

// Reviewer manages the buyer's review of a completed transaction
type Reviewer interface {
	CreateReview(ctx context.Context, transactionID, actorID uuid.UUID, in ReviewInput) (*ReviewView, error)
	GetReview(ctx context.Context, transactionID, actorID uuid.UUID) (*ReviewView, error)
	UpdateReview(ctx context.Context, transactionID, actorID uuid.UUID, in ReviewInput) (*ReviewView, error)
	DeleteReview(ctx context.Context, transactionID, actorID uuid.UUID) error
}

// Ensure concrete types implement interfaces
var (
	_ Purchaser         = (*PurchaseService)(nil)
	_ Negotiator        = (*NegotiationService)(nil)
	_ TransactionReader = (*QueryService)(nil)
	_ Reviewer          = (*ReviewService)(nil)
	_ RoleResolver      = ParticipantResolver{}
)
