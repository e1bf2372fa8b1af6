package service

import (
	"testing"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func pendingTxn() *models.Transaction {
	return &models.Transaction{
		ID:         uuid.New(),
		ListingID:  uuid.New(),
		BuyerID:    uuid.New(),
		SellerID:   uuid.New(),
		Status:     models.TransactionStatusPending,
		ProposedBy: models.RoleNone,
		Version:    1,
	}
}

func negotiatingTxn(proposer models.Role) *models.Transaction {
	txn := pendingTxn()
	txn.Status = models.TransactionStatusNegotiating
	txn.ProposedBy = proposer
	txn.PaymentMethod = models.PaymentMethodVenmo
	txn.DeliveryMethod = models.DeliveryMethodMeetup
	txn.MeetLocation = "Bobst Library"
	txn.MeetTime = timePtr(engineNow.Add(24 * time.Hour))
	txn.Version = 2
	return txn
}

func scheduledTxn() *models.Transaction {
	txn := negotiatingTxn(models.RoleBuyer)
	txn.Status = models.TransactionStatusScheduled
	txn.ProposedBy = models.RoleNone
	txn.Version = 3
	return txn
}

func withStatus(status models.TransactionStatus) *models.Transaction {
	txn := scheduledTxn()
	txn.Status = status
	return txn
}

func meetupProposal(meetTime time.Time) Proposal {
	return Proposal{
		PaymentMethod:  models.PaymentMethodVenmo,
		DeliveryMethod: models.DeliveryMethodMeetup,
		MeetLocation:   "  Washington Square Arch ",
		MeetTime:       &meetTime,
	}
}

func TestPropose(t *testing.T) {
	t.Run("buyer opens negotiation", func(t *testing.T) {
		current := pendingTxn()
		before := *current

		next, err := Propose(current, models.RoleBuyer, meetupProposal(engineNow.Add(2*time.Hour)), engineNow)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusNegotiating, next.Status)
		assert.Equal(t, models.RoleBuyer, next.ProposedBy)
		assert.Equal(t, models.PaymentMethodVenmo, next.PaymentMethod)
		assert.Equal(t, "Washington Square Arch", next.MeetLocation)
		assert.Equal(t, before, *current, "current must not be modified")
	})

	t.Run("seller counter-proposes keeping the buyer's payment", func(t *testing.T) {
		current := negotiatingTxn(models.RoleBuyer)

		next, err := Propose(current, models.RoleSeller, Proposal{
			DeliveryMethod: models.DeliveryMethodPickup,
		}, engineNow)

		require.NoError(t, err)
		assert.Equal(t, models.RoleSeller, next.ProposedBy)
		assert.Equal(t, models.PaymentMethodVenmo, next.PaymentMethod)
		assert.Equal(t, models.DeliveryMethodPickup, next.DeliveryMethod)
		assert.Empty(t, next.MeetLocation)
		assert.Nil(t, next.MeetTime)
	})

	t.Run("seller may echo the same payment method", func(t *testing.T) {
		current := negotiatingTxn(models.RoleBuyer)
		p := meetupProposal(engineNow.Add(3 * time.Hour))

		next, err := Propose(current, models.RoleSeller, p, engineNow)

		require.NoError(t, err)
		assert.Equal(t, models.RoleSeller, next.ProposedBy)
	})

	t.Run("proposing again from scheduled reopens negotiation", func(t *testing.T) {
		next, err := Propose(scheduledTxn(), models.RoleSeller, Proposal{
			DeliveryMethod: models.DeliveryMethodPickup,
		}, engineNow)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusNegotiating, next.Status)
		assert.Equal(t, models.RoleSeller, next.ProposedBy)
	})

	tests := []struct {
		wantErr  error
		current  *models.Transaction
		proposal Proposal
		name     string
		role     models.Role
	}{
		{
			name:     "non-participant",
			current:  pendingTxn(),
			role:     models.RoleUnauthorized,
			proposal: meetupProposal(engineNow.Add(2 * time.Hour)),
			wantErr:  ErrForbiddenRole,
		},
		{
			name:     "seller changes payment method",
			current:  negotiatingTxn(models.RoleBuyer),
			role:     models.RoleSeller,
			proposal: Proposal{PaymentMethod: models.PaymentMethodCash, DeliveryMethod: models.DeliveryMethodPickup},
			wantErr:  ErrForbiddenRole,
		},
		{
			name:     "seller before buyer chose payment",
			current:  pendingTxn(),
			role:     models.RoleSeller,
			proposal: Proposal{DeliveryMethod: models.DeliveryMethodPickup},
			wantErr:  ErrValidation,
		},
		{
			name:     "buyer without payment method",
			current:  pendingTxn(),
			role:     models.RoleBuyer,
			proposal: Proposal{DeliveryMethod: models.DeliveryMethodPickup},
			wantErr:  ErrValidation,
		},
		{
			name:     "unknown payment method",
			current:  pendingTxn(),
			role:     models.RoleBuyer,
			proposal: Proposal{PaymentMethod: "BITCOIN", DeliveryMethod: models.DeliveryMethodPickup},
			wantErr:  ErrValidation,
		},
		{
			name:    "meetup without location",
			current: pendingTxn(),
			role:    models.RoleBuyer,
			proposal: Proposal{
				PaymentMethod:  models.PaymentMethodCash,
				DeliveryMethod: models.DeliveryMethodMeetup,
				MeetTime:       timePtr(engineNow.Add(2 * time.Hour)),
			},
			wantErr: ErrValidation,
		},
		{
			name:     "meeting 59m59s ahead",
			current:  pendingTxn(),
			role:     models.RoleBuyer,
			proposal: meetupProposal(engineNow.Add(59*time.Minute + 59*time.Second)),
			wantErr:  ErrMeetingTimeTooSoon,
		},
		{
			name:     "completed is immutable",
			current:  withStatus(models.TransactionStatusCompleted),
			role:     models.RoleBuyer,
			proposal: meetupProposal(engineNow.Add(2 * time.Hour)),
			wantErr:  ErrInvalidTransition,
		},
		{
			name:     "cancelled is immutable",
			current:  withStatus(models.TransactionStatusCancelled),
			role:     models.RoleSeller,
			proposal: Proposal{DeliveryMethod: models.DeliveryMethodPickup},
			wantErr:  ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.current

			next, err := Propose(tt.current, tt.role, tt.proposal, engineNow)

			assert.Nil(t, next)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, *tt.current)
		})
	}
}

func TestPropose_MeetingLeadTimeBoundary(t *testing.T) {
	tooSoon := meetupProposal(engineNow.Add(59*time.Minute + 59*time.Second))
	_, err := Propose(pendingTxn(), models.RoleBuyer, tooSoon, engineNow)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrCodeMeetingTimeTooSoon, svcErr.Code)

	justEnough := meetupProposal(engineNow.Add(time.Hour + time.Second))
	next, err := Propose(pendingTxn(), models.RoleBuyer, justEnough, engineNow)
	require.NoError(t, err)
	require.NotNil(t, next.MeetTime)
	assert.Equal(t, time.UTC, next.MeetTime.Location())
}

func TestConfirm(t *testing.T) {
	t.Run("counterparty confirms", func(t *testing.T) {
		next, err := Confirm(negotiatingTxn(models.RoleBuyer), models.RoleSeller)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusScheduled, next.Status)
		assert.Equal(t, models.RoleNone, next.ProposedBy)
		assert.Equal(t, "Bobst Library", next.MeetLocation)
	})

	t.Run("buyer confirms seller's terms", func(t *testing.T) {
		next, err := Confirm(negotiatingTxn(models.RoleSeller), models.RoleBuyer)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusScheduled, next.Status)
	})

	tests := []struct {
		wantErr error
		current *models.Transaction
		name    string
		role    models.Role
	}{
		{name: "proposer confirms own terms", current: negotiatingTxn(models.RoleBuyer), role: models.RoleBuyer, wantErr: ErrForbiddenRole},
		{name: "non-participant", current: negotiatingTxn(models.RoleBuyer), role: models.RoleUnauthorized, wantErr: ErrForbiddenRole},
		{name: "nothing proposed", current: pendingTxn(), role: models.RoleSeller, wantErr: ErrInvalidTransition},
		{name: "already scheduled", current: scheduledTxn(), role: models.RoleBuyer, wantErr: ErrInvalidTransition},
		{name: "cancelled", current: withStatus(models.TransactionStatusCancelled), role: models.RoleSeller, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Confirm(tt.current, tt.role)

			assert.Nil(t, next)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarkSold(t *testing.T) {
	t.Run("seller completes scheduled transaction", func(t *testing.T) {
		next, err := MarkSold(scheduledTxn(), models.RoleSeller)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, next.Status)
	})

	t.Run("seller on negotiating", func(t *testing.T) {
		_, err := MarkSold(negotiatingTxn(models.RoleBuyer), models.RoleSeller)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("seller on completed", func(t *testing.T) {
		_, err := MarkSold(withStatus(models.TransactionStatusCompleted), models.RoleSeller)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("buyer is refused in every status", func(t *testing.T) {
		for _, current := range []*models.Transaction{
			pendingTxn(),
			negotiatingTxn(models.RoleSeller),
			scheduledTxn(),
			withStatus(models.TransactionStatusCompleted),
			withStatus(models.TransactionStatusCancelled),
		} {
			_, err := MarkSold(current, models.RoleBuyer)
			assert.ErrorIs(t, err, ErrForbiddenRole, "status %s", current.Status)
		}
	})
}

func TestCancel(t *testing.T) {
	for _, current := range []*models.Transaction{pendingTxn(), negotiatingTxn(models.RoleBuyer), scheduledTxn()} {
		for _, role := range []models.Role{models.RoleBuyer, models.RoleSeller} {
			t.Run(string(current.Status)+" by "+string(role), func(t *testing.T) {
				next, err := Cancel(current, role)

				require.NoError(t, err)
				assert.Equal(t, models.TransactionStatusCancelled, next.Status)
				assert.Equal(t, models.RoleNone, next.ProposedBy)
			})
		}
	}

	t.Run("already cancelled", func(t *testing.T) {
		_, err := Cancel(withStatus(models.TransactionStatusCancelled), models.RoleBuyer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("completed", func(t *testing.T) {
		_, err := Cancel(withStatus(models.TransactionStatusCompleted), models.RoleSeller)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("non-participant", func(t *testing.T) {
		_, err := Cancel(pendingTxn(), models.RoleUnauthorized)
		assert.ErrorIs(t, err, ErrForbiddenRole)
	})
}

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		current *models.Transaction
		name    string
		role    models.Role
		want    []Action
	}{
		{name: "pending buyer", current: pendingTxn(), role: models.RoleBuyer, want: []Action{ActionPropose, ActionCancel}},
		{name: "pending seller", current: pendingTxn(), role: models.RoleSeller, want: []Action{ActionCancel}},
		{
			name:    "awaiting seller",
			current: negotiatingTxn(models.RoleBuyer),
			role:    models.RoleSeller,
			want:    []Action{ActionPropose, ActionConfirm, ActionCancel},
		},
		{
			name:    "buyer waiting on seller",
			current: negotiatingTxn(models.RoleBuyer),
			role:    models.RoleBuyer,
			want:    []Action{ActionPropose, ActionCancel},
		},
		{
			name:    "scheduled seller",
			current: scheduledTxn(),
			role:    models.RoleSeller,
			want:    []Action{ActionPropose, ActionMarkSold, ActionCancel},
		},
		{name: "completed", current: withStatus(models.TransactionStatusCompleted), role: models.RoleSeller, want: nil},
		{name: "non-participant", current: pendingTxn(), role: models.RoleUnauthorized, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedActions(tt.current, tt.role))
		})
	}
}

func TestCheckInvariants(t *testing.T) {
	t.Run("same buyer and seller", func(t *testing.T) {
		txn := pendingTxn()
		txn.SellerID = txn.BuyerID

		var svcErr *ServiceError
		require.ErrorAs(t, checkInvariants(txn), &svcErr)
		assert.Equal(t, ErrCodeInternalError, svcErr.Code)
	})

	t.Run("outstanding proposal outside negotiation", func(t *testing.T) {
		txn := scheduledTxn()
		txn.ProposedBy = models.RoleBuyer

		assert.Error(t, checkInvariants(txn))
	})

	t.Run("scheduled meetup without location", func(t *testing.T) {
		txn := scheduledTxn()
		txn.MeetLocation = ""

		assert.Error(t, checkInvariants(txn))
	})

	t.Run("valid states", func(t *testing.T) {
		assert.NoError(t, checkInvariants(pendingTxn()))
		assert.NoError(t, checkInvariants(negotiatingTxn(models.RoleSeller)))
		assert.NoError(t, checkInvariants(scheduledTxn()))
	})
}
