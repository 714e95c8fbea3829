package repository

import (
	"context"
	"database/sql"

	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
)

const submissionColumns = `id, title, description, location, region, theme, innovator_name,
	impact, contact_email, contact_info, image_url, status, submitted_at`

// submissionRepo is the concrete implementation of SubmissionRepository
type submissionRepo struct {
	db database.Querier
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db database.Querier) SubmissionRepository {
	return &submissionRepo{db: db}
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var s models.Submission
	var impact, contactInfo, imageURL sql.NullString

	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Location, &s.Region, &s.Theme, &s.InnovatorName,
		&impact, &s.ContactEmail, &contactInfo, &imageURL, &s.Status, &s.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Impact = impact.String
	s.ContactInfo = contactInfo.String
	s.ImageURL = imageURL.String
	return &s, nil
}

// Create inserts a new submission and fills in id and submitted_at
func (r *submissionRepo) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO story_submissions (title, description, location, region, theme, innovator_name,
			impact, contact_email, contact_info, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, submitted_at
	`
	return r.db.QueryRowContext(ctx, query,
		s.Title, s.Description, s.Location, s.Region, s.Theme, s.InnovatorName,
		nullString(s.Impact), s.ContactEmail, nullString(s.ContactInfo), nullString(s.ImageURL), s.Status,
	).Scan(&s.ID, &s.SubmittedAt)
}

// GetForUpdate retrieves a submission and locks the row
func (r *submissionRepo) GetForUpdate(ctx context.Context, id int64) (*models.Submission, error) {
	return r.getOne(ctx, `SELECT `+submissionColumns+` FROM story_submissions WHERE id = $1 FOR UPDATE`, id)
}

func (r *submissionRepo) getOne(ctx context.Context, query string, id int64) (*models.Submission, error) {
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sub, err
}

// List returns submissions newest first
func (r *submissionRepo) List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+submissionColumns+` FROM story_submissions ORDER BY submitted_at DESC, id DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+submissionColumns+` FROM story_submissions WHERE status = $1 ORDER BY submitted_at DESC, id DESC`,
			status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*models.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// UpdateStatus sets the review status
func (r *submissionRepo) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	_, err := r.db.ExecContext(ctx, "UPDATE story_submissions SET status = $1 WHERE id = $2", status, id)
	return err
}

// Count returns the number of submissions with the given status, or all when empty
func (r *submissionRepo) Count(ctx context.Context, status models.SubmissionStatus) (int, error) {
	var count int
	var err error
	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM story_submissions").Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM story_submissions WHERE status = $1", status).Scan(&count)
	}
	return count, err
}
