package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// StoryRepository defines the interface for catalog data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	// GetForUpdate reads a story and locks its row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id int64) (*models.Story, error)
	// IncrementViewCount bumps view_count by one and returns the updated row
	IncrementViewCount(ctx context.Context, id int64) (*models.Story, error)
	List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Replace writes every editable column. It reports false when the row does not exist.
	Replace(ctx context.Context, story *models.Story) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	TotalViews(ctx context.Context) (int64, error)
}

// SubmissionRepository defines the interface for submission data operations
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetForUpdate(ctx context.Context, id int64) (*models.Submission, error)
	// List returns submissions with the given status, or all of them when status is empty
	List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error)
	UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error
	Count(ctx context.Context, status models.SubmissionStatus) (int, error)
}

// AnalyticsRepository defines the interface for the append-only event log
type AnalyticsRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
	List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error)
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Story      StoryRepository
	Submission SubmissionRepository
	Analytics  AnalyticsRepository
	Tx         Transactor
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	repos := bind(db)
	repos.Tx = &txRunner{db: db}
	return repos
}

func bind(q database.Querier) *Repositories {
	return &Repositories{
		User:       NewUserRepo(q),
		Story:      NewStoryRepo(q),
		Submission: NewSubmissionRepo(q),
		Analytics:  NewAnalyticsRepo(q),
	}
}

type txRunner struct {
	db *database.DB
}

func (t *txRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	return t.db.WithTx(ctx, func(tx *sql.Tx) error {
		repos := bind(tx)
		repos.Tx = nested{repos: repos}
		return fn(ctx, repos)
	})
}

// nested joins the already open transaction
type nested struct {
	repos *Repositories
}

func (n nested) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	return fn(ctx, n.repos)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint failure
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
