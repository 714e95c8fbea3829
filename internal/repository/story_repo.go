package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
)

const storyColumns = `id, title, slug, summary, description, location, region, theme,
	latitude, longitude, image_url, innovator_name, beneficiaries_count, impact,
	contact_email, contact_info, is_featured, view_count, created_at, updated_at`

// storyRepo is the concrete implementation of StoryRepository
type storyRepo struct {
	db database.Querier
}

// NewStoryRepo creates a new story repository
func NewStoryRepo(db database.Querier) StoryRepository {
	return &storyRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*models.Story, error) {
	var s models.Story
	var imageURL, impact, contactEmail, contactInfo sql.NullString

	err := row.Scan(
		&s.ID, &s.Title, &s.Slug, &s.Summary, &s.Description, &s.Location, &s.Region, &s.Theme,
		&s.Latitude, &s.Longitude, &imageURL, &s.InnovatorName, &s.BeneficiariesCount, &impact,
		&contactEmail, &contactInfo, &s.IsFeatured, &s.ViewCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ImageURL = imageURL.String
	s.Impact = impact.String
	s.ContactEmail = contactEmail.String
	s.ContactInfo = contactInfo.String
	return &s, nil
}

func (r *storyRepo) getOne(ctx context.Context, query string, args ...any) (*models.Story, error) {
	story, err := scanStory(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return story, err
}

// Create inserts a new story and fills in id and timestamps
func (r *storyRepo) Create(ctx context.Context, s *models.Story) error {
	query := `
		INSERT INTO innovation_stories (title, slug, summary, description, location, region, theme,
			latitude, longitude, image_url, innovator_name, beneficiaries_count, impact,
			contact_email, contact_info, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, view_count, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		s.Title, s.Slug, s.Summary, s.Description, s.Location, s.Region, s.Theme,
		s.Latitude, s.Longitude, nullString(s.ImageURL), s.InnovatorName, s.BeneficiariesCount,
		nullString(s.Impact), nullString(s.ContactEmail), nullString(s.ContactInfo), s.IsFeatured,
	).Scan(&s.ID, &s.ViewCount, &s.CreatedAt, &s.UpdatedAt)
}

// GetForUpdate retrieves a story and locks the row
func (r *storyRepo) GetForUpdate(ctx context.Context, id int64) (*models.Story, error) {
	return r.getOne(ctx, `SELECT `+storyColumns+` FROM innovation_stories WHERE id = $1 FOR UPDATE`, id)
}

// IncrementViewCount reads and counts a view in one statement
func (r *storyRepo) IncrementViewCount(ctx context.Context, id int64) (*models.Story, error) {
	query := `
		UPDATE innovation_stories SET view_count = view_count + 1
		WHERE id = $1
		RETURNING ` + storyColumns
	return r.getOne(ctx, query, id)
}

// List returns stories matching the filter, newest first
func (r *storyRepo) List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error) {
	var conds []string
	var args []any

	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, fmt.Sprintf("is_featured = $%d", len(args)))
	}
	if filter.Region != "" {
		args = append(args, filter.Region)
		conds = append(conds, fmt.Sprintf("region = $%d", len(args)))
	}
	if filter.Theme != "" {
		args = append(args, filter.Theme)
		conds = append(conds, fmt.Sprintf("theme = $%d", len(args)))
	}

	query := `SELECT ` + storyColumns + ` FROM innovation_stories`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := make([]*models.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

// SlugExists checks if a story with the given slug exists
func (r *storyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM innovation_stories WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Replace overwrites every editable column; slug and counters are kept
func (r *storyRepo) Replace(ctx context.Context, s *models.Story) (bool, error) {
	query := `
		UPDATE innovation_stories SET
			title = $1, summary = $2, description = $3, location = $4, region = $5, theme = $6,
			latitude = $7, longitude = $8, image_url = $9, innovator_name = $10,
			beneficiaries_count = $11, impact = $12, contact_email = $13, contact_info = $14,
			is_featured = $15, updated_at = NOW()
		WHERE id = $16
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		s.Title, s.Summary, s.Description, s.Location, s.Region, s.Theme,
		s.Latitude, s.Longitude, nullString(s.ImageURL), s.InnovatorName,
		s.BeneficiariesCount, nullString(s.Impact), nullString(s.ContactEmail), nullString(s.ContactInfo),
		s.IsFeatured, s.ID,
	).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a story. Analytics rows referencing it are left as they are.
func (r *storyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM innovation_stories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of published stories
func (r *storyRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM innovation_stories").Scan(&count)
	return count, err
}

// TotalViews sums view_count across the catalog
func (r *storyRepo) TotalViews(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(view_count), 0) FROM innovation_stories").Scan(&total)
	return total, err
}
