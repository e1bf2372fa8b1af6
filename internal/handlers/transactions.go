package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/campusmarket/negotiation/internal/middleware"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/campusmarket/negotiation/internal/service"
	"github.com/google/uuid"
)

const maxRequestBodyBytes = 16 << 10

// InitiatePurchase handles POST /api/v1/listings/{listingId}/purchase
func (h *Handler) InitiatePurchase(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	listingID, err := bindUUIDPath(r, "listingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeValidationFailed, "invalid listing ID format")
		return
	}

	txn, err := h.purchases.InitiatePurchase(r.Context(), listingID, actorID)
	if err != nil {
		h.writeServiceError(w, r, "initiate_purchase", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransaction(txn))
}

// ListTransactions handles GET /api/v1/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	views, err := h.reader.ListTransactions(r.Context(), actorID)
	if err != nil {
		h.writeServiceError(w, r, "list_transactions", err)
		return
	}

	resp := api.TransactionList{Transactions: make([]api.TransactionView, 0, len(views))}
	for _, v := range views {
		resp.Transactions = append(resp.Transactions, toTransactionView(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTransaction handles GET /api/v1/transactions/{transactionId}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	view, err := h.reader.GetTransaction(r.Context(), transactionID, actorID)
	if err != nil {
		h.writeServiceError(w, r, "get_transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionView(view))
}

// ProposeTerms handles POST /api/v1/transactions/{transactionId}/proposals
func (h *Handler) ProposeTerms(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	var req api.ProposeTermsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeValidationFailed, "invalid request body")
		return
	}

	txn, err := h.negotiator.ProposeTerms(r.Context(), transactionID, actorID, toProposal(req))
	if err != nil {
		h.writeServiceError(w, r, "propose_terms", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransaction(txn))
}

// ConfirmTerms handles POST /api/v1/transactions/{transactionId}/confirm
func (h *Handler) ConfirmTerms(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, "confirm_terms", h.negotiator.ConfirmTerms)
}

// MarkSold handles POST /api/v1/transactions/{transactionId}/mark-sold
func (h *Handler) MarkSold(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, "mark_sold", h.negotiator.MarkSold)
}

// Cancel handles POST /api/v1/transactions/{transactionId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, "cancel", h.negotiator.Cancel)
}

type actionFunc func(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error)

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, operation string, action actionFunc) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	txn, err := action(r.Context(), transactionID, actorID)
	if err != nil {
		h.writeServiceError(w, r, operation, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransaction(txn))
}

func (h *Handler) requireActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, api.ErrorCodeUnauthorized, "missing or invalid "+middleware.UserIDHeader+" header")
		return uuid.Nil, false
	}
	return actorID, true
}

func (h *Handler) actorAndTransaction(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	actorID, ok := h.requireActor(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	transactionID, err := bindUUIDPath(r, "transactionId")
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeValidationFailed, "invalid transaction ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return actorID, transactionID, true
}

func toProposal(req api.ProposeTermsRequest) service.Proposal {
	p := service.Proposal{
		DeliveryMethod: models.DeliveryMethod(req.DeliveryMethod),
		MeetTime:       req.MeetTime,
	}
	if req.PaymentMethod != nil {
		p.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.MeetLocation != nil {
		p.MeetLocation = *req.MeetLocation
	}
	return p
}
