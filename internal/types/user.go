package types

import "time"

// UserLog is a single user-reported health data entry. All metric fields
// are optional; a nil pointer means the user did not report that metric.
type UserLog struct {
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	ActivityMinutes *int      `json:"activity_minutes,omitempty"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	WaterIntakeML   *int      `json:"water_intake_ml,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	HeartRate       *int      `json:"heart_rate,omitempty"`
	Steps           *int      `json:"steps,omitempty"`
	Mood            string    `json:"mood,omitempty"`
}

// UserProfile holds the user's static health profile.
type UserProfile struct {
	UserID            string   `json:"user_id"`
	Age               *int     `json:"age,omitempty"`
	WeightKG          *float64 `json:"weight_kg,omitempty"`
	HeightCM          *float64 `json:"height_cm,omitempty"`
	HealthGoals       []string `json:"health_goals,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
}

// UserData bundles the log history and profile a workflow run operates on.
// Logs are ordered most recent first.
type UserData struct {
	Logs    []UserLog    `json:"logs,omitempty"`
	Profile *UserProfile `json:"profile,omitempty"`
}

// IsEmpty reports whether there is nothing to summarize.
func (d UserData) IsEmpty() bool {
	return len(d.Logs) == 0 && d.Profile == nil
}
