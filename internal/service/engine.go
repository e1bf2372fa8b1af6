package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
)

// Action names a negotiation step a participant can take
type Action string

const (
	ActionPropose  Action = "propose"
	ActionConfirm  Action = "confirm"
	ActionMarkSold Action = "mark_sold"
	ActionCancel   Action = "cancel"
)

// transitionTable lists, per action, the statuses it is legal from and the status it leads to.
var transitionTable = map[Action]map[models.TransactionStatus]models.TransactionStatus{
	ActionPropose: {
		models.TransactionStatusPending:     models.TransactionStatusNegotiating,
		models.TransactionStatusNegotiating: models.TransactionStatusNegotiating,
		models.TransactionStatusScheduled:   models.TransactionStatusNegotiating,
	},
	ActionConfirm: {
		models.TransactionStatusNegotiating: models.TransactionStatusScheduled,
	},
	ActionMarkSold: {
		models.TransactionStatusScheduled: models.TransactionStatusCompleted,
	},
	ActionCancel: {
		models.TransactionStatusPending:     models.TransactionStatusCancelled,
		models.TransactionStatusNegotiating: models.TransactionStatusCancelled,
		models.TransactionStatusScheduled:   models.TransactionStatusCancelled,
	},
}

func nextStatus(action Action, from models.TransactionStatus) (models.TransactionStatus, bool) {
	to, ok := transitionTable[action][from]
	return to, ok
}

// Proposal carries the terms a participant puts forward.
// An empty PaymentMethod keeps the stored one.
type Proposal struct {
	MeetTime       *time.Time
	PaymentMethod  models.PaymentMethod
	DeliveryMethod models.DeliveryMethod
	MeetLocation   string
}

// Propose computes the state after role proposes p at time now.
// current is never modified.
func Propose(current *models.Transaction, role models.Role, p Proposal, now time.Time) (*models.Transaction, error) {
	if !role.IsParticipant() {
		return nil, forbidden("only the buyer or seller can propose terms")
	}

	to, ok := nextStatus(ActionPropose, current.Status)
	if !ok {
		return nil, invalidTransition(fmt.Sprintf("cannot propose terms on a %s transaction", current.Status))
	}

	payment := current.PaymentMethod
	if p.PaymentMethod != "" {
		if err := ValidatePaymentMethod(p.PaymentMethod); err != nil {
			return nil, validationFailed(err.Error())
		}
		if role != models.RoleBuyer && p.PaymentMethod != current.PaymentMethod {
			return nil, forbidden("only the buyer can set the payment method")
		}
		payment = p.PaymentMethod
	}
	if payment == "" {
		if role == models.RoleSeller {
			return nil, validationFailed("the buyer must choose a payment method before the seller can propose terms")
		}
		return nil, validationFailed("payment method is required")
	}

	location := strings.TrimSpace(p.MeetLocation)
	if err := ValidateDeliveryTerms(p.DeliveryMethod, location, p.MeetTime); err != nil {
		return nil, validationFailed(err.Error())
	}

	var meetTime *time.Time
	if p.MeetTime != nil {
		if err := ValidateMeetTime(*p.MeetTime, now); err != nil {
			return nil, &ServiceError{
				Code:    ErrCodeMeetingTimeTooSoon,
				Message: err.Error(),
				Err:     ErrMeetingTimeTooSoon,
			}
		}
		mt := p.MeetTime.UTC()
		meetTime = &mt
	}

	next := current.Clone()
	next.PaymentMethod = payment
	next.DeliveryMethod = p.DeliveryMethod
	next.MeetLocation = location
	next.MeetTime = meetTime
	next.ProposedBy = role
	next.Status = to

	if err := checkInvariants(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Confirm computes the state after role accepts the outstanding proposal.
// Only the counterparty of the proposer may confirm.
func Confirm(current *models.Transaction, role models.Role) (*models.Transaction, error) {
	if !role.IsParticipant() {
		return nil, forbidden("only the buyer or seller can confirm terms")
	}

	to, ok := nextStatus(ActionConfirm, current.Status)
	if !ok {
		return nil, invalidTransition(fmt.Sprintf("cannot confirm terms on a %s transaction", current.Status))
	}

	if current.ProposedBy == role {
		return nil, forbidden("the proposer cannot confirm their own terms")
	}

	next := current.Clone()
	next.Status = to
	next.ProposedBy = models.RoleNone

	if err := checkInvariants(next); err != nil {
		return nil, err
	}
	return next, nil
}

// MarkSold computes the state after the seller records the hand-over.
// A buyer is always refused, whatever the status.
func MarkSold(current *models.Transaction, role models.Role) (*models.Transaction, error) {
	if role != models.RoleSeller {
		return nil, forbidden("only the seller can mark the transaction as sold")
	}

	to, ok := nextStatus(ActionMarkSold, current.Status)
	if !ok {
		return nil, invalidTransition(fmt.Sprintf("cannot mark a %s transaction as sold", current.Status))
	}

	next := current.Clone()
	next.Status = to

	if err := checkInvariants(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Cancel computes the state after either participant abandons the negotiation.
func Cancel(current *models.Transaction, role models.Role) (*models.Transaction, error) {
	if !role.IsParticipant() {
		return nil, forbidden("only the buyer or seller can cancel the transaction")
	}

	if current.Status == models.TransactionStatusCancelled {
		return nil, invalidTransition("transaction is already cancelled")
	}

	to, ok := nextStatus(ActionCancel, current.Status)
	if !ok {
		return nil, invalidTransition(fmt.Sprintf("a %s transaction cannot be cancelled", current.Status))
	}

	next := current.Clone()
	next.Status = to
	next.ProposedBy = models.RoleNone

	if err := checkInvariants(next); err != nil {
		return nil, err
	}
	return next, nil
}

// AllowedActions lists the actions role could take on t right now. Propose is
// reported when a proposal is possible in principle; its terms may still be rejected.
func AllowedActions(t *models.Transaction, role models.Role) []Action {
	if !role.IsParticipant() {
		return nil
	}

	var actions []Action
	if _, ok := nextStatus(ActionPropose, t.Status); ok {
		if role == models.RoleBuyer || t.PaymentMethod != "" {
			actions = append(actions, ActionPropose)
		}
	}
	if _, err := Confirm(t, role); err == nil {
		actions = append(actions, ActionConfirm)
	}
	if _, err := MarkSold(t, role); err == nil {
		actions = append(actions, ActionMarkSold)
	}
	if _, err := Cancel(t, role); err == nil {
		actions = append(actions, ActionCancel)
	}
	return actions
}

// checkInvariants guards every computed state before it is handed to the store.
func checkInvariants(t *models.Transaction) error {
	if t.BuyerID == t.SellerID {
		return internalError("invariant violated", fmt.Errorf("buyer and seller are the same user"))
	}

	outstanding := t.ProposedBy != models.RoleNone
	if outstanding != (t.Status == models.TransactionStatusNegotiating) {
		return internalError("invariant violated",
			fmt.Errorf("proposed_by %s is inconsistent with status %s", t.ProposedBy, t.Status))
	}

	if t.Status == models.TransactionStatusScheduled || t.Status == models.TransactionStatusCompleted {
		if t.DeliveryMethod == "" {
			return internalError("invariant violated", fmt.Errorf("%s transaction has no delivery method", t.Status))
		}
		if t.DeliveryMethod == models.DeliveryMethodMeetup && (t.MeetLocation == "" || t.MeetTime == nil) {
			return internalError("invariant violated", fmt.Errorf("%s meetup has no location or time", t.Status))
		}
	}

	return nil
}
