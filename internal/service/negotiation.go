package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/events"
	"github.com/campusmarket/negotiation/internal/metrics"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// NegotiationService applies negotiation actions to stored transactions
type NegotiationService struct {
	store     boundedStore
	roles     RoleResolver
	publisher events.Publisher
	metrics   *metrics.NegotiationMetrics
	clock     clockwork.Clock
	logger    *slog.Logger
	cfg       config.NegotiationConfig
}

// NewNegotiationService creates a new NegotiationService
func NewNegotiationService(
	store TransactionStore,
	publisher events.Publisher,
	m *metrics.NegotiationMetrics,
	cfg *config.NegotiationConfig,
	logger *slog.Logger,
) *NegotiationService {
	return &NegotiationService{
		store:     boundedStore{store: store, timeout: cfg.StoreTimeout},
		roles:     ParticipantResolver{},
		publisher: publisher,
		metrics:   m,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		cfg:       *cfg,
	}
}

// WithClock replaces the time source used for meeting time checks
func (s *NegotiationService) WithClock(clock clockwork.Clock) *NegotiationService {
	s.clock = clock
	return s
}

// WithRoleResolver replaces the default participant-based role resolution
func (s *NegotiationService) WithRoleResolver(roles RoleResolver) *NegotiationService {
	s.roles = roles
	return s
}

// ProposeTerms records the actor's proposed payment and delivery terms
func (s *NegotiationService) ProposeTerms(ctx context.Context, transactionID, actorID uuid.UUID, p Proposal) (*models.Transaction, error) {
	return s.apply(ctx, ActionPropose, transactionID, actorID,
		func(current *models.Transaction, role models.Role, now time.Time) (*models.Transaction, error) {
			return Propose(current, role, p, now)
		})
}

// ConfirmTerms accepts the counterparty's outstanding proposal
func (s *NegotiationService) ConfirmTerms(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error) {
	return s.apply(ctx, ActionConfirm, transactionID, actorID,
		func(current *models.Transaction, role models.Role, _ time.Time) (*models.Transaction, error) {
			return Confirm(current, role)
		})
}

// MarkSold completes a scheduled transaction on the seller's behalf
func (s *NegotiationService) MarkSold(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error) {
	return s.apply(ctx, ActionMarkSold, transactionID, actorID,
		func(current *models.Transaction, role models.Role, _ time.Time) (*models.Transaction, error) {
			return MarkSold(current, role)
		})
}

// Cancel abandons a transaction that has not completed
func (s *NegotiationService) Cancel(ctx context.Context, transactionID, actorID uuid.UUID) (*models.Transaction, error) {
	return s.apply(ctx, ActionCancel, transactionID, actorID,
		func(current *models.Transaction, role models.Role, _ time.Time) (*models.Transaction, error) {
			return Cancel(current, role)
		})
}

type transitionFunc func(current *models.Transaction, role models.Role, now time.Time) (*models.Transaction, error)

// apply runs load, resolve, compute and compare-and-swap, repeating the whole
// sequence when the swap loses against a concurrent update. Nothing is written
// unless the transition succeeds.
func (s *NegotiationService) apply(
	ctx context.Context,
	action Action,
	transactionID, actorID uuid.UUID,
	transition transitionFunc,
) (*models.Transaction, error) {
	start := s.clock.Now()
	attempts := 0

	operation := func() (*models.Transaction, error) {
		attempts++

		current, err := s.store.load(ctx, transactionID)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		role := s.roles.ResolveRole(current, actorID)
		next, err := transition(current, role, s.clock.Now())
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		saved, err := s.store.compareAndSwap(ctx, current.Version, next)
		if err != nil {
			if errors.Is(err, models.ErrVersionConflict) {
				s.metrics.RecordSwapConflict(string(action))
				s.logger.Debug("lost compare-and-swap, retrying",
					"action", action,
					"transaction_id", transactionID,
					"expected_version", current.Version,
					"attempt", attempts,
				)
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		return saved, nil
	}

	saved, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(uint(s.cfg.MaxSwapAttempts)),
	)
	if err != nil {
		err = s.classifyError(err, attempts)
		s.metrics.RecordAction(string(action), errorCode(err), s.clock.Since(start))
		s.logger.Info("negotiation action rejected",
			"action", action,
			"transaction_id", transactionID,
			"actor_id", actorID,
			"error", err,
		)
		return nil, err
	}

	s.metrics.RecordAction(string(action), metrics.OutcomeSuccess, s.clock.Since(start))
	s.logger.Info("negotiation action applied",
		"action", action,
		"transaction_id", saved.ID,
		"status", saved.Status,
		"version", saved.Version,
		"attempts", attempts,
	)

	publishEvent(ctx, s.publisher, s.metrics, s.logger, eventTypeFor(action), saved, s.clock.Now())

	return saved, nil
}

func (s *NegotiationService) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.RetryInitialInterval
	b.MaxInterval = s.cfg.RetryMaxInterval
	return b
}

func (s *NegotiationService) classifyError(err error, attempts int) error {
	if errors.Is(err, models.ErrVersionConflict) {
		return &ServiceError{
			Code:    ErrCodeConcurrentModification,
			Message: "transaction kept changing while the action was applied; retry",
			Err:     ErrConcurrentModification,
		}
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	if errors.Is(err, context.Canceled) {
		return requestCanceled("negotiation abandoned")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{
			Code:    ErrCodeStoreUnavailable,
			Message: "request deadline exceeded",
			Err:     ErrStoreUnavailable,
		}
	}

	s.logger.Error("unexpected negotiation failure", "error", err, "attempts", attempts)
	return internalError("negotiation failed", err)
}

func eventTypeFor(action Action) events.EventType {
	switch action {
	case ActionPropose:
		return events.EventTermsProposed
	case ActionConfirm:
		return events.EventTermsConfirmed
	case ActionMarkSold:
		return events.EventTransactionCompleted
	default:
		return events.EventTransactionCancelled
	}
}

// publishEvent delivers the event on a best-effort basis: the change is
// already committed, so a failed publish is logged and counted only.
func publishEvent(
	ctx context.Context,
	publisher events.Publisher,
	m *metrics.NegotiationMetrics,
	logger *slog.Logger,
	eventType events.EventType,
	txn *models.Transaction,
	at time.Time,
) {
	if publisher == nil {
		return
	}

	ev := events.NewTransactionEvent(eventType, txn, at)
	if err := publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		m.RecordPublishFailure(string(eventType))
		logger.Error("failed to publish transaction event",
			"event_type", eventType,
			"transaction_id", txn.ID,
			"error", err,
		)
	}
}

func errorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternalError
}
