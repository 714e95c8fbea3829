package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.Wrap(sqlDB, zerolog.Nop()), mock
}

var storyCols = []string{
	"id", "title", "slug", "summary", "description", "location", "region", "theme",
	"latitude", "longitude", "image_url", "innovator_name", "beneficiaries_count", "impact",
	"contact_email", "contact_info", "is_featured", "view_count", "created_at", "updated_at",
}

func storyRow(id int64, slug string, views int) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(storyCols).AddRow(
		id, "Solar Lamps", slug, "Lighting", "Lighting for night classes.", "Zaatari", "Middle East", "Energy",
		"32.29410000", nil, nil, "Omar", 120, nil,
		"omar@example.org", nil, true, views, now, now,
	)
}

func TestStoryRepo_IncrementViewCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE innovation_stories SET view_count = view_count + 1")).
		WithArgs(int64(7)).
		WillReturnRows(storyRow(7, "solar-lamps", 4))

	story, err := repo.IncrementViewCount(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, story)

	assert.Equal(t, 4, story.ViewCount)
	assert.Equal(t, "solar-lamps", story.Slug)
	assert.True(t, story.Latitude.Valid)
	assert.True(t, story.Latitude.Decimal.Equal(decimal.RequireFromString("32.2941")))
	assert.False(t, story.Longitude.Valid)
	assert.Empty(t, story.ImageURL)
	assert.Equal(t, "omar@example.org", story.ContactEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryRepo_IncrementViewCount_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE innovation_stories SET view_count")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(storyCols))

	story, err := repo.IncrementViewCount(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, story)
}

func TestStoryRepo_List_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter models.StoryFilter
		where  string
		args   []driver.Value
	}{
		{
			name:  "no filter",
			where: "FROM innovation_stories ORDER BY created_at DESC",
		},
		{
			name:   "featured and region",
			filter: models.StoryFilter{Featured: boolPtr(true), Region: "East Africa"},
			where:  "WHERE is_featured = $1 AND region = $2 ORDER BY",
			args:   []driver.Value{true, "East Africa"},
		},
		{
			name:   "theme only",
			filter: models.StoryFilter{Theme: "Energy"},
			where:  "WHERE theme = $1 ORDER BY",
			args:   []driver.Value{"Energy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewStoryRepo(db)

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.where))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(storyRow(1, "solar-lamps", 0))

			stories, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, stories, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStoryRepo_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM innovation_stories").WillReturnRows(sqlmock.NewRows(storyCols))

	stories, err := repo.List(context.Background(), models.StoryFilter{})
	require.NoError(t, err)
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}

func TestStoryRepo_Replace_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE innovation_stories SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	ok, err := repo.Replace(context.Background(), &models.Story{ID: 404, Title: "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoryRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM innovation_stories WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM innovation_stories WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoryRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStoryRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO innovation_stories")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "view_count", "created_at", "updated_at"}).AddRow(11, 0, now, now))

	story := &models.Story{Title: "Clean Water", Slug: "clean-water", InnovatorName: "Amina"}
	require.NoError(t, repo.Create(context.Background(), story))
	assert.Equal(t, int64(11), story.ID)
	assert.Equal(t, now, story.CreatedAt)
}

func TestSubmissionRepo_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewSubmissionRepo(db)

	cols := []string{"id", "title", "description", "location", "region", "theme", "innovator_name",
		"impact", "contact_email", "contact_info", "image_url", "status", "submitted_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM story_submissions WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			5, "Clean Water", "desc", "Kakuma", "East Africa", "Water", "Amina",
			nil, "amina@example.org", nil, "/uploads/stories/a.png", "pending", time.Now(),
		))

	sub, err := repo.GetForUpdate(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.Empty(t, sub.Impact)
	assert.Equal(t, "/uploads/stories/a.png", sub.ImageURL)
}

func TestSubmissionRepo_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewSubmissionRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM story_submissions WHERE status = $1")).
		WithArgs(models.SubmissionPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM story_submissions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	pending, err := repo.Count(context.Background(), models.SubmissionPending)
	require.NoError(t, err)
	total, err := repo.Count(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 3, pending)
	assert.Equal(t, 8, total)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)

	cols := []string{"id", "email", "password_hash", "name", "role", "is_active", "created_at", "last_login"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("admin@example.org").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "admin@example.org", "$2a$10$hash", nil, "admin", true, time.Now(), nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@example.org").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByEmail(context.Background(), "admin@example.org")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.Name)
	assert.Nil(t, user.LastLogin)

	user, err = repo.GetByEmail(context.Background(), "nobody@example.org")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAnalyticsRepo_CreateDefaultsMetadata(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAnalyticsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO site_analytics")).
		WithArgs("page_view", sql.NullInt64{}, "{}").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	event := &models.AnalyticsEvent{EventType: "page_view"}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(1), event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAnalyticsRepo(db)
	storyID := int64(42)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE event_type = $1 AND story_id = $2 ORDER BY created_at DESC, id DESC LIMIT $3")).
		WithArgs("story_view", storyID, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "story_id", "metadata", "created_at"}).
			AddRow(2, "story_view", storyID, []byte(`{}`), time.Now()).
			AddRow(1, "story_view", nil, []byte(`{"ref":"home"}`), time.Now()))

	events, err := repo.List(context.Background(), models.AnalyticsFilter{EventType: "story_view", StoryID: &storyID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, storyID, *events[0].StoryID)
	assert.Nil(t, events[1].StoryID)
	assert.JSONEq(t, `{"ref":"home"}`, string(events[1].Metadata))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repos := repository.New(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE story_submissions SET status = $1 WHERE id = $2")).
		WithArgs(models.SubmissionApproved, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repos.Tx.WithinTx(context.Background(), func(ctx context.Context, tx *repository.Repositories) error {
		if err := tx.Submission.UpdateStatus(ctx, 1, models.SubmissionApproved); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repos := repository.New(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE story_submissions SET status")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repos.Tx.WithinTx(context.Background(), func(ctx context.Context, tx *repository.Repositories) error {
		return tx.Submission.UpdateStatus(ctx, 1, models.SubmissionRejected)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func boolPtr(b bool) *bool { return &b }
