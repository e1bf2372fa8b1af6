package service

import (
	"errors"
	"fmt"
)

// Error classes returned by the negotiation service. Every ServiceError wraps
// exactly one of them, so callers can branch with errors.Is.
var (
	ErrForbiddenRole          = errors.New("actor is not permitted to perform this action")
	ErrInvalidTransition      = errors.New("action is not legal from the current status")
	ErrValidation             = errors.New("validation failed")
	ErrMeetingTimeTooSoon     = errors.New("meeting time is too soon")
	ErrConcurrentModification = errors.New("transaction was modified concurrently")
	ErrNotFound               = errors.New("not found")
	ErrStoreUnavailable       = errors.New("transaction store unavailable")
	ErrAlreadyExists          = errors.New("already exists")
	ErrRequestCanceled        = errors.New("request canceled")
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the same request unchanged.
func (e *ServiceError) Retryable() bool {
	return errors.Is(e.Err, ErrConcurrentModification) || errors.Is(e.Err, ErrStoreUnavailable)
}

// Common error codes
const (
	ErrCodeForbiddenRole          = "forbidden_role"
	ErrCodeInvalidTransition      = "invalid_transition"
	ErrCodeValidation             = "validation_failed"
	ErrCodeMeetingTimeTooSoon     = "meeting_time_too_soon"
	ErrCodeConcurrentModification = "concurrent_modification"
	ErrCodeTransactionNotFound    = "transaction_not_found"
	ErrCodeListingNotFound        = "listing_not_found"
	ErrCodeListingUnavailable     = "listing_unavailable"
	ErrCodeSelfPurchase           = "self_purchase"
	ErrCodeStoreUnavailable       = "store_unavailable"
	ErrCodeReviewNotFound         = "review_not_found"
	ErrCodeReviewExists           = "review_exists"
	ErrCodeRequestCanceled        = "request_canceled"
	ErrCodeInternalError          = "internal_error"
)

func forbidden(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeForbiddenRole, Message: message, Err: ErrForbiddenRole}
}

func invalidTransition(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidTransition, Message: message, Err: ErrInvalidTransition}
}

func validationFailed(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message, Err: ErrValidation}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: fmt.Sprintf("%s: %v", message, err)}
}

// requestCanceled reports that the caller went away before the action finished.
// Nothing was written on its behalf.
func requestCanceled(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeRequestCanceled, Message: message + ": request canceled", Err: ErrRequestCanceled}
}
