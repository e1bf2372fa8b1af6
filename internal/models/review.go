package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewTag names one thing that went well in a completed transaction
type ReviewTag string

const (
	ReviewTagPunctuality     ReviewTag = "punctuality"
	ReviewTagCommunication   ReviewTag = "communication"
	ReviewTagPricing         ReviewTag = "pricing"
	ReviewTagItemDescription ReviewTag = "item_description"
)

// ReviewTags lists every accepted tag
var ReviewTags = []ReviewTag{
	ReviewTagPunctuality,
	ReviewTagCommunication,
	ReviewTagPricing,
	ReviewTagItemDescription,
}

func (t ReviewTag) IsValid() bool {
	switch t {
	case ReviewTagPunctuality, ReviewTagCommunication, ReviewTagPricing, ReviewTagItemDescription:
		return true
	default:
		return false
	}
}

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is the buyer's rating of a completed transaction. There is at most
// one review per transaction.
type Review struct {
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
	AdditionalComments string      `db:"additional_comments"`
	WhatWentWell       []ReviewTag `db:"what_went_well"`
	Rating             int         `db:"rating"`
	ID                 uuid.UUID   `db:"id"`
	TransactionID      uuid.UUID   `db:"transaction_id"`
	ReviewerID         uuid.UUID   `db:"reviewer_id"`
}

// Clone returns a deep copy of the review
func (r *Review) Clone() *Review {
	if r == nil {
		return nil
	}
	c := *r
	if r.WhatWentWell != nil {
		c.WhatWentWell = append([]ReviewTag(nil), r.WhatWentWell...)
	}
	return &c
}
