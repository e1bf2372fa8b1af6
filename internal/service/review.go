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
)

// ReviewInput is the buyer-supplied part of a review
type ReviewInput struct {
	AdditionalComments string
	WhatWentWell       []models.ReviewTag
	Rating             int
}

// ReviewView is a review as shown to a participant. The reviewer is
// identified only by a display label.
type ReviewView struct {
	models.Review
	ReviewerLabel string
}

// ReviewService manages the buyer's review of a completed transaction.
// Only participants may read it; only the buyer may write it.
type ReviewService struct {
	transactions boundedStore
	reviews      ReviewStore
	roles        RoleResolver
	profiles     ProfileDirectory
	logger       *slog.Logger
	timeout      time.Duration
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	transactions TransactionStore,
	reviews ReviewStore,
	profiles ProfileDirectory,
	cfg *config.NegotiationConfig,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		transactions: boundedStore{store: transactions, timeout: cfg.StoreTimeout},
		reviews:      reviews,
		roles:        ParticipantResolver{},
		profiles:     profiles,
		logger:       logger,
		timeout:      cfg.StoreTimeout,
	}
}

// WithRoleResolver replaces the default participant-based role resolution
func (s *ReviewService) WithRoleResolver(roles RoleResolver) *ReviewService {
	s.roles = roles
	return s
}

// CreateReview records the buyer's review. The transaction must be COMPLETED
// and must not already have a review.
func (s *ReviewService) CreateReview(ctx context.Context, transactionID, actorID uuid.UUID, in ReviewInput) (*ReviewView, error) {
	txn, role, err := s.participant(ctx, transactionID, actorID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleBuyer {
		return nil, forbidden("only the buyer can review this transaction")
	}
	if txn.Status != models.TransactionStatusCompleted {
		return nil, invalidTransition("only completed transactions can be reviewed")
	}

	tags, err := ValidateReview(in.Rating, in.WhatWentWell, in.AdditionalComments)
	if err != nil {
		return nil, validationFailed(err.Error())
	}

	review := &models.Review{
		ID:                 uuid.New(),
		TransactionID:      txn.ID,
		ReviewerID:         actorID,
		Rating:             in.Rating,
		WhatWentWell:       tags,
		AdditionalComments: strings.TrimSpace(in.AdditionalComments),
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.reviews.Create(callCtx, review); err != nil {
		return nil, s.translateReviewError(callCtx, err, "failed to create review")
	}

	s.logger.Info("review created",
		"transaction_id", txn.ID,
		"review_id", review.ID,
		"rating", review.Rating,
	)

	return s.buildView(ctx, review), nil
}

// GetReview returns the transaction's review to either participant
func (s *ReviewService) GetReview(ctx context.Context, transactionID, actorID uuid.UUID) (*ReviewView, error) {
	if _, _, err := s.participant(ctx, transactionID, actorID); err != nil {
		return nil, err
	}

	review, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, review), nil
}

// UpdateReview replaces the rating, tags and comments. Only the reviewer may update.
func (s *ReviewService) UpdateReview(ctx context.Context, transactionID, actorID uuid.UUID, in ReviewInput) (*ReviewView, error) {
	review, err := s.ownReview(ctx, transactionID, actorID, "update")
	if err != nil {
		return nil, err
	}

	tags, err := ValidateReview(in.Rating, in.WhatWentWell, in.AdditionalComments)
	if err != nil {
		return nil, validationFailed(err.Error())
	}

	review.Rating = in.Rating
	review.WhatWentWell = tags
	review.AdditionalComments = strings.TrimSpace(in.AdditionalComments)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	saved, err := s.reviews.Update(callCtx, review)
	if err != nil {
		return nil, s.translateReviewError(callCtx, err, "failed to update review")
	}

	s.logger.Info("review updated", "transaction_id", transactionID, "review_id", saved.ID, "rating", saved.Rating)

	return s.buildView(ctx, saved), nil
}

// DeleteReview removes the review. Only the reviewer may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, transactionID, actorID uuid.UUID) error {
	review, err := s.ownReview(ctx, transactionID, actorID, "delete")
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.reviews.Delete(callCtx, transactionID); err != nil {
		return s.translateReviewError(callCtx, err, "failed to delete review")
	}

	s.logger.Info("review deleted", "transaction_id", transactionID, "review_id", review.ID)
	return nil
}

// participant loads the transaction and refuses anyone who is not on either side of it
func (s *ReviewService) participant(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, models.Role, error) {
	txn, err := s.transactions.load(ctx, transactionID)
	if err != nil {
		return nil, models.RoleUnauthorized, err
	}

	role := s.roles.ResolveRole(txn, actorID)
	if !role.IsParticipant() {
		return nil, role, forbidden("only the buyer or seller can access this review")
	}
	return txn, role, nil
}

func (s *ReviewService) ownReview(ctx context.Context, transactionID, actorID uuid.UUID, verb string) (*models.Review, error) {
	if _, _, err := s.participant(ctx, transactionID, actorID); err != nil {
		return nil, err
	}

	review, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != actorID {
		return nil, forbidden("only the reviewer can " + verb + " this review")
	}
	return review, nil
}

func (s *ReviewService) load(ctx context.Context, transactionID uuid.UUID) (*models.Review, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	review, err := s.reviews.GetByTransaction(callCtx, transactionID)
	if err != nil {
		return nil, s.translateReviewError(callCtx, err, "failed to load review")
	}
	return review, nil
}

func (s *ReviewService) translateReviewError(callCtx context.Context, err error, message string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &ServiceError{
			Code:    ErrCodeReviewNotFound,
			Message: "review not found",
			Err:     ErrNotFound,
		}
	case errors.Is(err, models.ErrDuplicateReview):
		return &ServiceError{
			Code:    ErrCodeReviewExists,
			Message: "a review already exists for this transaction",
			Err:     ErrAlreadyExists,
		}
	}

	translated := translateStoreError(callCtx, err, message)
	var svcErr *ServiceError
	if errors.As(translated, &svcErr) && svcErr.Code == ErrCodeInternalError {
		s.logger.Error("review store failure", "error", err)
	}
	return translated
}

func (s *ReviewService) buildView(ctx context.Context, review *models.Review) *ReviewView {
	view := &ReviewView{Review: *review}
	if view.WhatWentWell == nil {
		view.WhatWentWell = []models.ReviewTag{}
	}

	if s.profiles == nil {
		return view
	}
	profile, err := s.profiles.GetProfile(ctx, review.ReviewerID)
	switch {
	case err == nil:
		view.ReviewerLabel = DisplayLabel(profile)
	case !errors.Is(err, models.ErrNotFound):
		s.logger.Warn("failed to load reviewer profile",
			"transaction_id", review.TransactionID,
			"error", err,
		)
	}
	return view
}
