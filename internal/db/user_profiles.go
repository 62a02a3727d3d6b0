package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// SaveUserProfile creates or replaces the stored profile of a user
func (db *DB) SaveUserProfile(ctx context.Context, userID uuid.UUID, profile *types.ResumeProfile) (*UserProfile, error) {
	if profile == nil {
		profile = &types.ResumeProfile{}
	}
	data, err := marshalJSON(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	up := &UserProfile{UserID: userID, Profile: *profile}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, profile) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = NOW()
		 RETURNING updated_at`,
		userID, data,
	).Scan(&up.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save user profile: %w", err)
	}
	return up, nil
}

// GetUserProfile retrieves the stored profile of a user
func (db *DB) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	up := UserProfile{UserID: userID}
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile, updated_at FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&data, &up.UpdatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if err := unmarshalJSON(data, &up.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return &up, nil
}
