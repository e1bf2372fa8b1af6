package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingStatus mirrors the status column owned by the listings service.
type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPending ListingStatus = "pending"
	ListingStatusSold    ListingStatus = "sold"
)

// Listing is the read-only display data this service needs about a listing.
type Listing struct {
	CreatedAt       time.Time       `db:"created_at"`
	Price           decimal.Decimal `db:"price"`
	Title           string          `db:"title"`
	PrimaryImageURL string          `db:"primary_image_url"`
	Status          ListingStatus   `db:"status"`
	ID              uuid.UUID       `db:"id"`
	SellerID        uuid.UUID       `db:"seller_id"`
}

// Profile is the subset of a user record used to label participants.
type Profile struct {
	NetID string    `db:"netid"`
	Email string    `db:"email"`
	ID    uuid.UUID `db:"id"`
}
