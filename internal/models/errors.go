package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrDuplicateTransaction indicates a transaction with the same id already exists
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrDuplicateReview indicates the transaction already has a review
	ErrDuplicateReview = errors.New("duplicate review")

	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict indicates a compare-and-swap lost against a newer version
	ErrVersionConflict = errors.New("version conflict")
)
