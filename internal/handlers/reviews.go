package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/campusmarket/negotiation/internal/service"
)

// CreateReview handles POST /api/v1/transactions/{transactionId}/review
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	in, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), transactionID, actorID, in)
	if err != nil {
		h.writeServiceError(w, r, "create_review", err)
		return
	}

	writeJSON(w, http.StatusCreated, toReview(review))
}

// GetReview handles GET /api/v1/transactions/{transactionId}/review
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	review, err := h.reviews.GetReview(r.Context(), transactionID, actorID)
	if err != nil {
		h.writeServiceError(w, r, "get_review", err)
		return
	}

	writeJSON(w, http.StatusOK, toReview(review))
}

// UpdateReview handles PUT /api/v1/transactions/{transactionId}/review
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	in, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	review, err := h.reviews.UpdateReview(r.Context(), transactionID, actorID, in)
	if err != nil {
		h.writeServiceError(w, r, "update_review", err)
		return
	}

	writeJSON(w, http.StatusOK, toReview(review))
}

// DeleteReview handles DELETE /api/v1/transactions/{transactionId}/review
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actorID, transactionID, ok := h.actorAndTransaction(w, r)
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), transactionID, actorID); err != nil {
		h.writeServiceError(w, r, "delete_review", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeReviewRequest(w http.ResponseWriter, r *http.Request) (service.ReviewInput, bool) {
	var req api.ReviewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeValidationFailed, "invalid request body")
		return service.ReviewInput{}, false
	}

	in := service.ReviewInput{
		Rating:       req.Rating,
		WhatWentWell: make([]models.ReviewTag, 0, len(req.WhatWentWell)),
	}
	for _, tag := range req.WhatWentWell {
		in.WhatWentWell = append(in.WhatWentWell, models.ReviewTag(tag))
	}
	if req.AdditionalComments != nil {
		in.AdditionalComments = *req.AdditionalComments
	}
	return in, true
}

func toReview(v *service.ReviewView) api.Review {
	review := api.Review{
		ID:                 v.ID,
		TransactionID:      v.TransactionID,
		Rating:             v.Rating,
		WhatWentWell:       make([]string, 0, len(v.WhatWentWell)),
		AdditionalComments: v.AdditionalComments,
		ReviewerLabel:      v.ReviewerLabel,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	for _, tag := range v.WhatWentWell {
		review.WhatWentWell = append(review.WhatWentWell, string(tag))
	}
	return review
}
