package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusmarket/negotiation/internal/models"
)

// MinMeetLeadTime is how far in the future a meeting must be when it is proposed.
const MinMeetLeadTime = time.Hour

// MaxMeetLocationLength matches the meet_location column width.
const MaxMeetLocationLength = 255

// ValidateMeetTime checks that meetTime is at least MinMeetLeadTime after now.
// Exactly now+MinMeetLeadTime is accepted.
func ValidateMeetTime(meetTime, now time.Time) error {
	earliest := now.Add(MinMeetLeadTime)
	if meetTime.Before(earliest) {
		return fmt.Errorf("meet time %s is before the earliest allowed %s",
			meetTime.UTC().Format(time.RFC3339), earliest.UTC().Format(time.RFC3339))
	}
	return nil
}

// ValidatePaymentMethod checks that p is a known payment method
func ValidatePaymentMethod(p models.PaymentMethod) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid payment method %q: must be VENMO, ZELLE or CASH", p)
	}
	return nil
}

// ValidateDeliveryTerms checks the fields required by the chosen delivery method.
// Timing is checked separately by ValidateMeetTime.
func ValidateDeliveryTerms(method models.DeliveryMethod, location string, meetTime *time.Time) error {
	if method == "" {
		return fmt.Errorf("delivery method is required")
	}
	if !method.IsValid() {
		return fmt.Errorf("invalid delivery method %q: must be MEETUP or PICKUP", method)
	}

	if utf8.RuneCountInString(location) > MaxMeetLocationLength {
		return fmt.Errorf("meet location exceeds %d characters", MaxMeetLocationLength)
	}

	if method == models.DeliveryMethodMeetup {
		if strings.TrimSpace(location) == "" {
			return fmt.Errorf("meet location is required for meetup delivery method")
		}
		if meetTime == nil {
			return fmt.Errorf("meet time is required for meetup delivery method")
		}
	}

	return nil
}

// MaxReviewCommentLength bounds the free-text part of a review.
const MaxReviewCommentLength = 2000

// ValidateReview checks the rating range, the tags and the comment length.
// Repeated tags are dropped; the cleaned tag list is returned.
func ValidateReview(rating int, tags []models.ReviewTag, comments string) ([]models.ReviewTag, error) {
	if rating < models.MinReviewRating || rating > models.MaxReviewRating {
		return nil, fmt.Errorf("rating must be between %d and %d", models.MinReviewRating, models.MaxReviewRating)
	}

	seen := make(map[models.ReviewTag]bool, len(tags))
	cleaned := make([]models.ReviewTag, 0, len(tags))
	for _, tag := range tags {
		if !tag.IsValid() {
			return nil, fmt.Errorf("%q is not a valid choice for what_went_well", tag)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}

	if utf8.RuneCountInString(comments) > MaxReviewCommentLength {
		return nil, fmt.Errorf("additional comments exceed %d characters", MaxReviewCommentLength)
	}

	return cleaned, nil
}
