package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
)

// ProfileRepository reads user profiles owned by the profile service
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type profileRepository struct {
	db *db.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(database *db.DB) ProfileRepository {
	return &profileRepository{db: database}
}

// GetProfile retrieves the fields used to label a participant
func (r *profileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, COALESCE(netid, ''), COALESCE(email, '')
		FROM users
		WHERE id = $1
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.NetID,
		&profile.Email,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}
