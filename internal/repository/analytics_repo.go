package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
)

// analyticsRepo is the concrete implementation of AnalyticsRepository
type analyticsRepo struct {
	db database.Querier
}

// NewAnalyticsRepo creates a new analytics repository
func NewAnalyticsRepo(db database.Querier) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

// Create appends an event and fills in id and created_at
func (r *analyticsRepo) Create(ctx context.Context, e *models.AnalyticsEvent) error {
	metadata := string(e.Metadata)
	if metadata == "" {
		metadata = "{}"
	}

	var storyID sql.NullInt64
	if e.StoryID != nil {
		storyID = sql.NullInt64{Int64: *e.StoryID, Valid: true}
	}

	query := `
		INSERT INTO site_analytics (event_type, story_id, metadata)
		VALUES ($1, $2, $3::jsonb)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, e.EventType, storyID, metadata).Scan(&e.ID, &e.CreatedAt)
}

// List returns events newest first, bounded by filter.Limit
func (r *analyticsRepo) List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error) {
	var conds []string
	var args []any

	if filter.EventType != "" {
		args = append(args, filter.EventType)
		conds = append(conds, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if filter.StoryID != nil {
		args = append(args, *filter.StoryID)
		conds = append(conds, fmt.Sprintf("story_id = $%d", len(args)))
	}

	query := `SELECT id, event_type, story_id, metadata, created_at FROM site_analytics`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.AnalyticsEvent, 0)
	for rows.Next() {
		var e models.AnalyticsEvent
		var storyID sql.NullInt64
		var metadata []byte

		if err := rows.Scan(&e.ID, &e.EventType, &storyID, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		if storyID.Valid {
			id := storyID.Int64
			e.StoryID = &id
		}
		e.Metadata = metadata
		events = append(events, &e)
	}
	return events, rows.Err()
}
