package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/events"
	"github.com/campusmarket/negotiation/internal/metrics"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// PurchaseService opens transactions on listings
type PurchaseService struct {
	store     boundedStore
	listings  ListingLookup
	publisher events.Publisher
	metrics   *metrics.NegotiationMetrics
	clock     clockwork.Clock
	logger    *slog.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	store TransactionStore,
	listings ListingLookup,
	publisher events.Publisher,
	m *metrics.NegotiationMetrics,
	cfg *config.NegotiationConfig,
	logger *slog.Logger,
) *PurchaseService {
	return &PurchaseService{
		store:     boundedStore{store: store, timeout: cfg.StoreTimeout},
		listings:  listings,
		publisher: publisher,
		metrics:   m,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
	}
}

// WithClock replaces the time source used for event timestamps
func (s *PurchaseService) WithClock(clock clockwork.Clock) *PurchaseService {
	s.clock = clock
	return s
}

// InitiatePurchase creates a PENDING transaction between the buyer and the listing's seller
func (s *PurchaseService) InitiatePurchase(ctx context.Context, listingID, buyerID uuid.UUID) (*models.Transaction, error) {
	if buyerID == uuid.Nil {
		return nil, forbidden("an authenticated buyer is required")
	}

	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeListingNotFound,
				Message: "listing not found",
				Err:     ErrNotFound,
			}
		}
		if errors.Is(err, context.Canceled) {
			return nil, requestCanceled("failed to look up listing")
		}
		s.logger.Error("failed to look up listing", "listing_id", listingID, "error", err)
		return nil, internalError("failed to look up listing", err)
	}

	if listing.SellerID == buyerID {
		return nil, &ServiceError{
			Code:    ErrCodeSelfPurchase,
			Message: "you cannot purchase your own listing",
			Err:     ErrValidation,
		}
	}

	if listing.Status != models.ListingStatusActive {
		return nil, &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "listing is " + string(listing.Status) + " and cannot be purchased",
			Err:     ErrInvalidTransition,
		}
	}

	txn := &models.Transaction{
		ID:         uuid.New(),
		ListingID:  listing.ID,
		BuyerID:    buyerID,
		SellerID:   listing.SellerID,
		Status:     models.TransactionStatusPending,
		ProposedBy: models.RoleNone,
		Version:    1,
	}

	if err := checkInvariants(txn); err != nil {
		return nil, err
	}

	if err := s.store.create(ctx, txn); err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError("failed to create transaction", err)
	}

	s.metrics.RecordTransactionCreated()
	s.logger.Info("transaction initiated",
		"transaction_id", txn.ID,
		"listing_id", txn.ListingID,
		"buyer_id", txn.BuyerID,
		"seller_id", txn.SellerID,
	)

	publishEvent(ctx, s.publisher, s.metrics, s.logger, events.EventTransactionInitiated, txn, s.clock.Now())

	return txn, nil
}
