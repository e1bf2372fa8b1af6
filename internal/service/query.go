package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingSummary is the listing display data shown next to a transaction
type ListingSummary struct {
	Price           decimal.Decimal `json:"price"`
	Title           string          `json:"title"`
	PrimaryImageURL string          `json:"primary_image_url,omitempty"`
}

// TransactionView is a transaction as seen by one of its participants.
// The counterpart is identified only by a display label.
type TransactionView struct {
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	MeetTime         *time.Time               `json:"meet_time,omitempty"`
	Listing          *ListingSummary          `json:"listing,omitempty"`
	Status           models.TransactionStatus `json:"status"`
	ProposedBy       models.Role              `json:"proposed_by"`
	ViewerRole       models.Role              `json:"viewer_role"`
	PaymentMethod    models.PaymentMethod     `json:"payment_method,omitempty"`
	DeliveryMethod   models.DeliveryMethod    `json:"delivery_method,omitempty"`
	MeetLocation     string                   `json:"meet_location,omitempty"`
	CounterpartLabel string                   `json:"counterpart_label,omitempty"`
	AllowedActions   []Action                 `json:"allowed_actions"`
	Version          int64                    `json:"version"`
	ID               uuid.UUID                `json:"id"`
	ListingID        uuid.UUID                `json:"listing_id"`
	AwaitingViewer   bool                     `json:"awaiting_viewer"`
}

// QueryService serves participant-scoped reads
type QueryService struct {
	store    boundedStore
	roles    RoleResolver
	listings ListingLookup
	profiles ProfileDirectory
	logger   *slog.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	store TransactionStore,
	listings ListingLookup,
	profiles ProfileDirectory,
	cfg *config.NegotiationConfig,
	logger *slog.Logger,
) *QueryService {
	return &QueryService{
		store:    boundedStore{store: store, timeout: cfg.StoreTimeout},
		roles:    ParticipantResolver{},
		listings: listings,
		profiles: profiles,
		logger:   logger,
	}
}

// GetTransaction returns the transaction as seen by actorID. Non-participants are refused.
func (s *QueryService) GetTransaction(ctx context.Context, transactionID, actorID uuid.UUID) (*TransactionView, error) {
	txn, err := s.store.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	role := s.roles.ResolveRole(txn, actorID)
	if !role.IsParticipant() {
		return nil, forbidden("only the buyer or seller can view this transaction")
	}

	return s.buildView(ctx, txn, role), nil
}

// ListTransactions returns every transaction the actor takes part in, newest first
func (s *QueryService) ListTransactions(ctx context.Context, actorID uuid.UUID) ([]*TransactionView, error) {
	if actorID == uuid.Nil {
		return nil, forbidden("an authenticated user is required")
	}

	txns, err := s.store.listByParticipant(ctx, actorID)
	if err != nil {
		return nil, err
	}

	views := make([]*TransactionView, 0, len(txns))
	for _, txn := range txns {
		role := s.roles.ResolveRole(txn, actorID)
		if !role.IsParticipant() {
			continue
		}
		views = append(views, s.buildView(ctx, txn, role))
	}
	return views, nil
}

func (s *QueryService) buildView(ctx context.Context, txn *models.Transaction, role models.Role) *TransactionView {
	view := &TransactionView{
		ID:             txn.ID,
		ListingID:      txn.ListingID,
		Status:         txn.Status,
		ProposedBy:     txn.ProposedBy,
		ViewerRole:     role,
		AwaitingViewer: txn.Status == models.TransactionStatusNegotiating && txn.ProposedBy == role.Counterpart(),
		PaymentMethod:  txn.PaymentMethod,
		DeliveryMethod: txn.DeliveryMethod,
		MeetLocation:   txn.MeetLocation,
		AllowedActions: AllowedActions(txn, role),
		Version:        txn.Version,
		CreatedAt:      txn.CreatedAt,
		UpdatedAt:      txn.UpdatedAt,
	}
	if view.AllowedActions == nil {
		view.AllowedActions = []Action{}
	}
	if txn.MeetTime != nil {
		mt := txn.MeetTime.UTC()
		view.MeetTime = &mt
	}

	if s.listings != nil {
		listing, err := s.listings.GetListing(ctx, txn.ListingID)
		switch {
		case err == nil:
			view.Listing = &ListingSummary{
				Title:           listing.Title,
				Price:           listing.Price,
				PrimaryImageURL: listing.PrimaryImageURL,
			}
		case !errors.Is(err, models.ErrNotFound):
			s.logger.Warn("failed to load listing for transaction view",
				"transaction_id", txn.ID,
				"listing_id", txn.ListingID,
				"error", err,
			)
		}
	}

	counterpartID := txn.SellerID
	if role == models.RoleSeller {
		counterpartID = txn.BuyerID
	}
	if s.profiles != nil {
		profile, err := s.profiles.GetProfile(ctx, counterpartID)
		switch {
		case err == nil:
			view.CounterpartLabel = DisplayLabel(profile)
		case !errors.Is(err, models.ErrNotFound):
			s.logger.Warn("failed to load counterpart profile",
				"transaction_id", txn.ID,
				"error", err,
			)
		}
	}

	return view
}

// DisplayLabel returns the netid, falling back to the local part of the email
func DisplayLabel(p *models.Profile) string {
	if p == nil {
		return ""
	}
	if netID := strings.TrimSpace(p.NetID); netID != "" {
		return netID
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}
