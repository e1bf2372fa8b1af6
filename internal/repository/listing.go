package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingRepository reads listings owned by the listings service
type ListingRepository interface {
	GetListing(ctx context.Context, listingID uuid.UUID) (*models.Listing, error)
}

type listingRepository struct {
	db *db.DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(database *db.DB) ListingRepository {
	return &listingRepository{db: database}
}

// GetListing retrieves listing display data and its current status
func (r *listingRepository) GetListing(ctx context.Context, listingID uuid.UUID) (*models.Listing, error) {
	query := `
		SELECT l.id, l.user_id, l.title, l.price, l.status, l.created_at,
		       COALESCE((
		           SELECT li.url FROM listing_images li
		           WHERE li.listing_id = l.id
		           ORDER BY li.is_primary DESC, li.sort_order ASC
		           LIMIT 1
		       ), '')
		FROM listings l
		WHERE l.id = $1
	`

	var (
		listing models.Listing
		price   decimal.Decimal
		status  string
	)
	err := r.db.QueryRowContext(ctx, query, listingID).Scan(
		&listing.ID,
		&listing.SellerID,
		&listing.Title,
		&price,
		&status,
		&listing.CreatedAt,
		&listing.PrimaryImageURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", listingID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	listing.Price = price
	listing.Status = models.ListingStatus(status)

	return &listing, nil
}
