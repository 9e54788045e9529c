package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// SuggestionDAO provides persistence for generated recommendations.
type SuggestionDAO struct {
	db *DB
}

// NewSuggestionDAO creates a SuggestionDAO.
func NewSuggestionDAO(db *DB) *SuggestionDAO {
	return &SuggestionDAO{db: db}
}

// Insert stores a single recommendation.
func (d *SuggestionDAO) Insert(ctx context.Context, rec types.Recommendation) error {
	_, err := d.db.conn.ExecContext(ctx, `
INSERT INTO suggestions (
    suggestion_id, user_id, timestamp, category, text,
    reasoning, confidence_score, source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.UserID,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.Category.String(),
		rec.Text,
		rec.Reasoning,
		rec.ConfidenceScore,
		rec.Source.String(),
	)
	if err != nil {
		return types.WrapError(types.DB_QUERY_FAILED, "failed to insert suggestion", err)
	}
	return nil
}

// InsertAll stores a batch of recommendations in one transaction.
func (d *SuggestionDAO) InsertAll(ctx context.Context, recs []types.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return d.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range recs {
			_, err := tx.ExecContext(ctx, `
INSERT INTO suggestions (
    suggestion_id, user_id, timestamp, category, text,
    reasoning, confidence_score, source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.ID.String(),
				rec.UserID,
				rec.Timestamp.UTC().Format(time.RFC3339),
				rec.Category.String(),
				rec.Text,
				rec.Reasoning,
				rec.ConfidenceScore,
				rec.Source.String(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByUser returns the user's stored recommendations, most recent first.
func (d *SuggestionDAO) ListByUser(ctx context.Context, userID string, limit int) ([]types.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	rows, err := d.db.conn.QueryContext(ctx, `
SELECT suggestion_id, user_id, timestamp, category, text,
       reasoning, confidence_score, source
FROM suggestions
WHERE user_id = ?
ORDER BY timestamp DESC
LIMIT ?`, userID, limit)
	if err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to query suggestions", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		var (
			rec       types.Recommendation
			id        string
			timestamp string
			category  string
			source    string
		)
		if err := rows.Scan(&id, &rec.UserID, &timestamp, &category,
			&rec.Text, &rec.Reasoning, &rec.ConfidenceScore, &source); err != nil {
			return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to scan suggestion", err)
		}

		rec.ID = types.ID(id)
		if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
			rec.Timestamp = ts
		}
		rec.Category = types.ParseCategory(category)
		rec.Source = types.Source(source)

		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.DB_QUERY_FAILED, "failed to iterate suggestions", err)
	}
	return recs, nil
}
