package service

import (
	"context"
	"time"

	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/session"
	"github.com/refugee-innovation-hub/internal/storage"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for dashboard sign-in
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.Session, *models.PublicUser, error)
	// CurrentSession returns nil when id is unknown, expired or the store is unreachable
	CurrentSession(ctx context.Context, id string) *models.Session
	Logout(ctx context.Context, id string) error
	// Check re-reads the session user. It returns nil when the user is gone or inactive.
	Check(ctx context.Context, sess *models.Session) (*models.PublicUser, error)
}

// StoryService defines the interface for catalog operations
type StoryService interface {
	List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error)
	Get(ctx context.Context, id int64) (*models.Story, error)
	Create(ctx context.Context, in *models.StoryInput) (*models.Story, error)
	Replace(ctx context.Context, id int64, in *models.StoryInput) error
	Patch(ctx context.Context, id int64, patch *models.StoryPatch) (*models.Story, error)
	Delete(ctx context.Context, id int64) error
}

// SubmissionService defines the interface for the submission review flow
type SubmissionService interface {
	Submit(ctx context.Context, in *models.SubmissionInput, image *ImageFile) (*models.Submission, error)
	List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error)
	SetStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.ReviewResult, error)
}

// AnalyticsService defines the interface for usage events
type AnalyticsService interface {
	// Track records an event on behalf of another operation. Failures are logged, never returned.
	Track(ctx context.Context, eventType string, storyID *int64, metadata map[string]interface{})
	Record(ctx context.Context, in *models.AnalyticsInput) (*models.AnalyticsEvent, error)
	List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error)
}

// UploadService defines the interface for image uploads
type UploadService interface {
	StoreImage(ctx context.Context, file *ImageFile) (*models.UploadResult, error)
	// DiscardImage removes a stored image that ended up unused. Failures are logged, never returned.
	DiscardImage(ctx context.Context, filename string)
}

// StatsService defines the interface for dashboard counters
type StatsService interface {
	Get(ctx context.Context) (*models.DashboardStats, error)
}

// Services holds all service interfaces
type Services struct {
	Auth       AuthService
	Story      StoryService
	Submission SubmissionService
	Analytics  AnalyticsService
	Upload     UploadService
	Stats      StatsService
}

// Option customises NewServices
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, used for slug suffixes and login timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	sessions session.Store,
	files storage.Storage,
	cfg *config.Config,
	log zerolog.Logger,
	opts ...Option,
) *Services {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	analyticsSvc := newAnalyticsService(repos.Analytics, log)
	uploadSvc := newUploadService(files, cfg.Upload.MaxUploadSize, o.now, log)

	return &Services{
		Auth:       newAuthService(repos.User, sessions, o.now, log),
		Story:      newStoryService(repos, o.now, log),
		Submission: newSubmissionService(repos, analyticsSvc, uploadSvc, o.now, log),
		Analytics:  analyticsSvc,
		Upload:     uploadSvc,
		Stats:      newStatsService(repos),
	}
}
