package api

import (
	"time"

	"github.com/google/uuid"
)

// ErrorCode is the machine-readable error identifier in error responses
type ErrorCode string

const (
	ErrorCodeForbiddenRole          ErrorCode = "forbidden_role"
	ErrorCodeInvalidTransition      ErrorCode = "invalid_transition"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeMeetingTimeTooSoon     ErrorCode = "meeting_time_too_soon"
	ErrorCodeConcurrentModification ErrorCode = "concurrent_modification"
	ErrorCodeTransactionNotFound    ErrorCode = "transaction_not_found"
	ErrorCodeListingNotFound        ErrorCode = "listing_not_found"
	ErrorCodeListingUnavailable     ErrorCode = "listing_unavailable"
	ErrorCodeSelfPurchase           ErrorCode = "self_purchase"
	ErrorCodeStoreUnavailable       ErrorCode = "store_unavailable"
	ErrorCodeReviewNotFound         ErrorCode = "review_not_found"
	ErrorCodeReviewExists           ErrorCode = "review_exists"
	ErrorCodeIdempotencyKeyReused   ErrorCode = "idempotency_key_reused"
	ErrorCodeRequestCanceled        ErrorCode = "request_canceled"
	ErrorCodeUnauthorized           ErrorCode = "unauthorized"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// Error is the body of every non-2xx response
type Error struct {
	Error   ErrorCode `json:"error"`
	Message string    `json:"message"`
}

// HealthStatus reports whether the service can reach its database
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// Health is the body of GET /health
type Health struct {
	Status HealthStatus `json:"status"`
}

// ProposeTermsRequest is the body of POST /api/v1/transactions/{transactionId}/proposals
type ProposeTermsRequest struct {
	MeetTime       *time.Time `json:"meet_time,omitempty"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	MeetLocation   *string    `json:"meet_location,omitempty"`
	DeliveryMethod string     `json:"delivery_method"`
}

// Transaction is returned by every mutating endpoint
type Transaction struct {
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	MeetTime       *time.Time `json:"meet_time,omitempty"`
	Status         string     `json:"status"`
	ProposedBy     string     `json:"proposed_by"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	DeliveryMethod string     `json:"delivery_method,omitempty"`
	MeetLocation   string     `json:"meet_location,omitempty"`
	Version        int64      `json:"version"`
	ID             uuid.UUID  `json:"id"`
	ListingID      uuid.UUID  `json:"listing_id"`
}

// ListingSummary is the listing display data attached to a TransactionView
type ListingSummary struct {
	Title           string `json:"title"`
	Price           string `json:"price"`
	PrimaryImageURL string `json:"primary_image_url,omitempty"`
}

// TransactionView is a transaction as seen by one of its participants
type TransactionView struct {
	Transaction
	Listing          *ListingSummary `json:"listing,omitempty"`
	ViewerRole       string          `json:"viewer_role"`
	CounterpartLabel string          `json:"counterpart_label,omitempty"`
	AllowedActions   []string        `json:"allowed_actions"`
	AwaitingViewer   bool            `json:"awaiting_viewer"`
}

// TransactionList is the body of GET /api/v1/transactions
type TransactionList struct {
	Transactions []TransactionView `json:"transactions"`
}

// ReviewRequest is the body of POST and PUT /api/v1/transactions/{transactionId}/review
type ReviewRequest struct {
	AdditionalComments *string  `json:"additional_comments,omitempty"`
	WhatWentWell       []string `json:"what_went_well,omitempty"`
	Rating             int      `json:"rating"`
}

// Review is the buyer's review of a completed transaction
type Review struct {
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	AdditionalComments string    `json:"additional_comments,omitempty"`
	ReviewerLabel      string    `json:"reviewer_label,omitempty"`
	WhatWentWell       []string  `json:"what_went_well"`
	Rating             int       `json:"rating"`
	ID                 uuid.UUID `json:"id"`
	TransactionID      uuid.UUID `json:"transaction_id"`
}
