package service

import (
	"strings"
	"testing"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateMeetTime(t *testing.T) {
	now := time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		meetTime time.Time
		name     string
		wantErr  bool
	}{
		{name: "59m59s ahead", meetTime: now.Add(59*time.Minute + 59*time.Second), wantErr: true},
		{name: "exactly one hour ahead", meetTime: now.Add(time.Hour), wantErr: false},
		{name: "1h0m1s ahead", meetTime: now.Add(time.Hour + time.Second), wantErr: false},
		{name: "in the past", meetTime: now.Add(-time.Hour), wantErr: true},
		{name: "next week", meetTime: now.Add(7 * 24 * time.Hour), wantErr: false},
		{
			name:     "other zone same instant as 30m ahead",
			meetTime: now.Add(30 * time.Minute).In(time.FixedZone("EST", -5*3600)),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMeetTime(tt.meetTime, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  models.PaymentMethod
		wantErr bool
	}{
		{name: "venmo", method: models.PaymentMethodVenmo},
		{name: "zelle", method: models.PaymentMethodZelle},
		{name: "cash", method: models.PaymentMethodCash},
		{name: "lowercase", method: "venmo", wantErr: true},
		{name: "unknown", method: "PAYPAL", wantErr: true},
		{name: "empty", method: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentMethod(tt.method)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDeliveryTerms(t *testing.T) {
	meet := time.Date(2026, 4, 11, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		meetTime *time.Time
		name     string
		method   models.DeliveryMethod
		location string
		wantErr  string
	}{
		{name: "meetup complete", method: models.DeliveryMethodMeetup, location: "Bobst Library", meetTime: &meet},
		{name: "pickup without location", method: models.DeliveryMethodPickup},
		{name: "pickup with time", method: models.DeliveryMethodPickup, meetTime: &meet},
		{name: "missing method", wantErr: "delivery method is required"},
		{name: "unknown method", method: "SHIPPING", wantErr: "invalid delivery method"},
		{name: "meetup without location", method: models.DeliveryMethodMeetup, meetTime: &meet, wantErr: "meet location is required"},
		{name: "meetup blank location", method: models.DeliveryMethodMeetup, location: "   ", meetTime: &meet, wantErr: "meet location is required"},
		{name: "meetup without time", method: models.DeliveryMethodMeetup, location: "Bobst Library", wantErr: "meet time is required"},
		{
			name:     "location too long",
			method:   models.DeliveryMethodPickup,
			location: strings.Repeat("a", MaxMeetLocationLength+1),
			wantErr:  "exceeds",
		},
		{
			name:     "location at limit in multibyte runes",
			method:   models.DeliveryMethodMeetup,
			location: strings.Repeat("é", MaxMeetLocationLength),
			meetTime: &meet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeliveryTerms(tt.method, tt.location, tt.meetTime)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
