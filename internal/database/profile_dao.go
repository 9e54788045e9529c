package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// ProfileDAO provides persistence for user profiles.
type ProfileDAO struct {
	db *DB
}

// NewProfileDAO creates a ProfileDAO.
func NewProfileDAO(db *DB) *ProfileDAO {
	return &ProfileDAO{db: db}
}

// Upsert inserts or replaces the user's profile. List fields are stored
// as JSON arrays.
func (d *ProfileDAO) Upsert(ctx context.Context, profile types.UserProfile) error {
	goals, err := json.Marshal(emptyIfNil(profile.HealthGoals))
	if err != nil {
		return types.WrapError(types.DB_QUERY_FAILED, "failed to encode health goals", err)
	}
	conditions, err := json.Marshal(emptyIfNil(profile.MedicalConditions))
	if err != nil {
		return types.WrapError(types.DB_QUERY_FAILED, "failed to encode medical conditions", err)
	}

	_, err = d.db.conn.ExecContext(ctx, `
INSERT OR REPLACE INTO user_profiles (
    user_id, age, weight_kg, height_cm, health_goals, medical_conditions
) VALUES (?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		nullableInt(profile.Age),
		nullableFloat(profile.WeightKG),
		nullableFloat(profile.HeightCM),
		string(goals),
		string(conditions),
	)
	if err != nil {
		return types.WrapError(types.DB_QUERY_FAILED, "failed to upsert user profile", err)
	}
	return nil
}

// Get returns the user's profile, or a DB_NOT_FOUND error if none exists.
func (d *ProfileDAO) Get(ctx context.Context, userID string) (*types.UserProfile, error) {
	var (
		profile    types.UserProfile
		age        sql.NullInt64
		weightKG   sql.NullFloat64
		heightCM   sql.NullFloat64
		goals      string
		conditions string
	)

	err := d.db.conn.QueryRowContext(ctx, `
SELECT user_id, age, weight_kg, height_cm, health_goals, medical_conditions
FROM user_profiles
WHERE user_id = ?`, userID).
		Scan(&profile.UserID, &age, &weightKG, &heightCM, &goals, &conditions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewError(types.DB_NOT_FOUND, "profile not found for user "+userID)
	}
	if err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to query user profile", err)
	}

	profile.Age = intPointer(age)
	profile.WeightKG = floatPointer(weightKG)
	profile.HeightCM = floatPointer(heightCM)

	if err := json.Unmarshal([]byte(goals), &profile.HealthGoals); err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to decode health goals", err)
	}
	if err := json.Unmarshal([]byte(conditions), &profile.MedicalConditions); err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to decode medical conditions", err)
	}

	return &profile, nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
