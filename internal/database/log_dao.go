package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// DefaultLogLimit is how many recent logs a query returns by default.
const DefaultLogLimit = 30

// LogDAO provides persistence for user health logs.
type LogDAO struct {
	db *DB
}

// NewLogDAO creates a LogDAO.
func NewLogDAO(db *DB) *LogDAO {
	return &LogDAO{db: db}
}

// Insert stores a single user log entry.
func (d *LogDAO) Insert(ctx context.Context, log types.UserLog) error {
	_, err := d.db.conn.ExecContext(ctx, `
INSERT INTO user_logs (
    user_id, timestamp, activity_minutes, sleep_hours,
    water_intake_ml, calories, heart_rate, steps, mood
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.UserID,
		log.Timestamp.UTC().Format(time.RFC3339),
		nullableInt(log.ActivityMinutes),
		nullableFloat(log.SleepHours),
		nullableInt(log.WaterIntakeML),
		nullableInt(log.Calories),
		nullableInt(log.HeartRate),
		nullableInt(log.Steps),
		nullableString(log.Mood),
	)
	if err != nil {
		return types.WrapError(types.DB_QUERY_FAILED, "failed to insert user log", err)
	}
	return nil
}

// ListByUser returns the user's logs, most recent first. limit <= 0
// uses DefaultLogLimit.
func (d *LogDAO) ListByUser(ctx context.Context, userID string, limit int) ([]types.UserLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	rows, err := d.db.conn.QueryContext(ctx, `
SELECT user_id, timestamp, activity_minutes, sleep_hours,
       water_intake_ml, calories, heart_rate, steps, mood
FROM user_logs
WHERE user_id = ?
ORDER BY timestamp DESC
LIMIT ?`, userID, limit)
	if err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to query user logs", err)
	}
	defer rows.Close()

	var logs []types.UserLog
	for rows.Next() {
		var (
			log             types.UserLog
			timestamp       string
			activityMinutes sql.NullInt64
			sleepHours      sql.NullFloat64
			waterIntakeML   sql.NullInt64
			calories        sql.NullInt64
			heartRate       sql.NullInt64
			steps           sql.NullInt64
			mood            sql.NullString
		)
		if err := rows.Scan(&log.UserID, &timestamp, &activityMinutes, &sleepHours,
			&waterIntakeML, &calories, &heartRate, &steps, &mood); err != nil {
			return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to scan user log", err)
		}

		if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
			log.Timestamp = ts
		}
		log.ActivityMinutes = intPointer(activityMinutes)
		log.SleepHours = floatPointer(sleepHours)
		log.WaterIntakeML = intPointer(waterIntakeML)
		log.Calories = intPointer(calories)
		log.HeartRate = intPointer(heartRate)
		log.Steps = intPointer(steps)
		log.Mood = mood.String

		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to iterate user logs", err)
	}
	return logs, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intPointer(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func floatPointer(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
