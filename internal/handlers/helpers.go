package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/campusmarket/negotiation/internal/service"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// retryAfterSeconds is advertised on retryable failures
const retryAfterSeconds = 1

// statusClientClosedRequest answers a request whose caller canceled it.
// net/http has no constant for it.
const statusClientClosedRequest = 499

func bindUUIDPath(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, r.PathValue(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	return id, err
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	writeJSON(w, status, api.Error{Error: code, Message: message})
}

func mapServiceErrorToCode(code string) api.ErrorCode {
	switch code {
	case service.ErrCodeForbiddenRole:
		return api.ErrorCodeForbiddenRole
	case service.ErrCodeInvalidTransition:
		return api.ErrorCodeInvalidTransition
	case service.ErrCodeValidation:
		return api.ErrorCodeValidationFailed
	case service.ErrCodeMeetingTimeTooSoon:
		return api.ErrorCodeMeetingTimeTooSoon
	case service.ErrCodeConcurrentModification:
		return api.ErrorCodeConcurrentModification
	case service.ErrCodeTransactionNotFound:
		return api.ErrorCodeTransactionNotFound
	case service.ErrCodeListingNotFound:
		return api.ErrorCodeListingNotFound
	case service.ErrCodeListingUnavailable:
		return api.ErrorCodeListingUnavailable
	case service.ErrCodeSelfPurchase:
		return api.ErrorCodeSelfPurchase
	case service.ErrCodeStoreUnavailable:
		return api.ErrorCodeStoreUnavailable
	case service.ErrCodeReviewNotFound:
		return api.ErrorCodeReviewNotFound
	case service.ErrCodeReviewExists:
		return api.ErrorCodeReviewExists
	case service.ErrCodeRequestCanceled:
		return api.ErrorCodeRequestCanceled
	default:
		return api.ErrorCodeInternalError
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrForbiddenRole):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConcurrentModification),
		errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrMeetingTimeTooSoon):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrRequestCanceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service failure onto the error response.
// Internal details are logged, never returned to the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "operation", operation, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	status := statusForError(svcErr)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "operation", operation, "path", r.URL.Path, "error", svcErr)
		writeError(w, status, api.ErrorCodeInternalError, "internal error")
		return
	}

	if svcErr.Retryable() {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	writeError(w, status, mapServiceErrorToCode(svcErr.Code), svcErr.Message)
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func toTransaction(txn *models.Transaction) api.Transaction {
	return api.Transaction{
		ID:             txn.ID,
		ListingID:      txn.ListingID,
		Status:         string(txn.Status),
		ProposedBy:     string(txn.ProposedBy),
		PaymentMethod:  string(txn.PaymentMethod),
		DeliveryMethod: string(txn.DeliveryMethod),
		MeetLocation:   txn.MeetLocation,
		MeetTime:       txn.MeetTime,
		Version:        txn.Version,
		CreatedAt:      txn.CreatedAt,
		UpdatedAt:      txn.UpdatedAt,
	}
}

func toTransactionView(v *service.TransactionView) api.TransactionView {
	view := api.TransactionView{
		Transaction: api.Transaction{
			ID:             v.ID,
			ListingID:      v.ListingID,
			Status:         string(v.Status),
			ProposedBy:     string(v.ProposedBy),
			PaymentMethod:  string(v.PaymentMethod),
			DeliveryMethod: string(v.DeliveryMethod),
			MeetLocation:   v.MeetLocation,
			MeetTime:       v.MeetTime,
			Version:        v.Version,
			CreatedAt:      v.CreatedAt,
			UpdatedAt:      v.UpdatedAt,
		},
		ViewerRole:       string(v.ViewerRole),
		CounterpartLabel: v.CounterpartLabel,
		AwaitingViewer:   v.AwaitingViewer,
		AllowedActions:   make([]string, 0, len(v.AllowedActions)),
	}
	for _, a := range v.AllowedActions {
		view.AllowedActions = append(view.AllowedActions, string(a))
	}
	if v.Listing != nil {
		view.Listing = &api.ListingSummary{
			Title:           v.Listing.Title,
			Price:           v.Listing.Price.StringFixed(2),
			PrimaryImageURL: v.Listing.PrimaryImageURL,
		}
	}
	return view
}
