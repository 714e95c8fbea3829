package mocks

import (
	"context"
	"sync"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/refugee-innovation-hub/internal/session"
	"github.com/refugee-innovation-hub/internal/storage"
)

// MockSessionStore is an in-memory session.Store
type MockSessionStore struct {
	mu          sync.Mutex
	Sessions    map[string]*models.Session
	CreateError error
	GetError    error
}

var _ session.Store = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[string]*models.Session)}
}

func (m *MockSessionStore) Create(ctx context.Context, sess *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	c := *sess
	m.Sessions[sess.ID] = &c
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	s, ok := m.Sessions[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, id)
	return nil
}

// MockStorage keeps uploaded files in memory
type MockStorage struct {
	mu          sync.Mutex
	Files       map[string][]byte
	UploadError error
}

var _ storage.Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{Files: make(map[string][]byte)}
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadError != nil {
		return "", m.UploadError
	}
	m.Files[key] = data
	return "/uploads/stories/" + key, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, key)
	return nil
}

// MockAuthService is a mock implementation of AuthService.
// Sessions maps cookie values to the session CurrentSession returns.
type MockAuthService struct {
	LoginFunc   func(ctx context.Context, req *models.LoginRequest) (*models.Session, *models.PublicUser, error)
	CheckFunc   func(ctx context.Context, sess *models.Session) (*models.PublicUser, error)
	Sessions    map[string]*models.Session
	LogoutCalls []string
}

var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Sessions: make(map[string]*models.Session)}
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, *models.PublicUser, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil, apperror.ErrInvalidCredentials
}

func (m *MockAuthService) CurrentSession(ctx context.Context, id string) *models.Session {
	return m.Sessions[id]
}

func (m *MockAuthService) Logout(ctx context.Context, id string) error {
	m.LogoutCalls = append(m.LogoutCalls, id)
	delete(m.Sessions, id)
	return nil
}

func (m *MockAuthService) Check(ctx context.Context, sess *models.Session) (*models.PublicUser, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, sess)
	}
	if sess == nil {
		return nil, nil
	}
	u := sess.User()
	return &u, nil
}

// MockStoryService is a mock implementation of StoryService
type MockStoryService struct {
	ListFunc    func(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error)
	GetFunc     func(ctx context.Context, id int64) (*models.Story, error)
	CreateFunc  func(ctx context.Context, in *models.StoryInput) (*models.Story, error)
	ReplaceFunc func(ctx context.Context, id int64, in *models.StoryInput) error
	PatchFunc   func(ctx context.Context, id int64, patch *models.StoryPatch) (*models.Story, error)
	DeleteFunc  func(ctx context.Context, id int64) error
	// Mutations counts calls that would change the catalog
	Mutations  int
	LastFilter models.StoryFilter
}

var _ service.StoryService = (*MockStoryService)(nil)

func NewMockStoryService() *MockStoryService {
	return &MockStoryService{}
}

func (m *MockStoryService) List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error) {
	m.LastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Story{}, nil
}

func (m *MockStoryService) Get(ctx context.Context, id int64) (*models.Story, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperror.NotFound("story")
}

func (m *MockStoryService) Create(ctx context.Context, in *models.StoryInput) (*models.Story, error) {
	m.Mutations++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &models.Story{ID: 1, Title: in.Title}, nil
}

func (m *MockStoryService) Replace(ctx context.Context, id int64, in *models.StoryInput) error {
	m.Mutations++
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, id, in)
	}
	return nil
}

func (m *MockStoryService) Patch(ctx context.Context, id int64, patch *models.StoryPatch) (*models.Story, error) {
	m.Mutations++
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	return &models.Story{ID: id}, nil
}

func (m *MockStoryService) Delete(ctx context.Context, id int64) error {
	m.Mutations++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	SubmitFunc    func(ctx context.Context, in *models.SubmissionInput, image *service.ImageFile) (*models.Submission, error)
	ListFunc      func(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error)
	SetStatusFunc func(ctx context.Context, id int64, status models.SubmissionStatus) (*models.ReviewResult, error)
	Submitted     []*models.SubmissionInput
	ListCalls     int
	StatusCalls   int
}

var _ service.SubmissionService = (*MockSubmissionService)(nil)

func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{}
}

func (m *MockSubmissionService) Submit(ctx context.Context, in *models.SubmissionInput, image *service.ImageFile) (*models.Submission, error) {
	m.Submitted = append(m.Submitted, in)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, in, image)
	}
	return &models.Submission{ID: int64(len(m.Submitted)), Title: in.Title, Status: models.SubmissionPending}, nil
}

func (m *MockSubmissionService) List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return []*models.Submission{}, nil
}

func (m *MockSubmissionService) SetStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.ReviewResult, error) {
	m.StatusCalls++
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return &models.ReviewResult{SubmissionID: id, Status: status}, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	RecordFunc func(ctx context.Context, in *models.AnalyticsInput) (*models.AnalyticsEvent, error)
	ListFunc   func(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error)
	Tracked    []string
	LastFilter models.AnalyticsFilter
}

var _ service.AnalyticsService = (*MockAnalyticsService)(nil)

func NewMockAnalyticsService() *MockAnalyticsService {
	return &MockAnalyticsService{}
}

func (m *MockAnalyticsService) Track(ctx context.Context, eventType string, storyID *int64, metadata map[string]interface{}) {
	m.Tracked = append(m.Tracked, eventType)
}

func (m *MockAnalyticsService) Record(ctx context.Context, in *models.AnalyticsInput) (*models.AnalyticsEvent, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, in)
	}
	return &models.AnalyticsEvent{ID: 1, EventType: in.EventType}, nil
}

func (m *MockAnalyticsService) List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error) {
	m.LastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.AnalyticsEvent{}, nil
}

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	StoreImageFunc func(ctx context.Context, file *service.ImageFile) (*models.UploadResult, error)
	Discarded      []string
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) StoreImage(ctx context.Context, file *service.ImageFile) (*models.UploadResult, error) {
	if m.StoreImageFunc != nil {
		return m.StoreImageFunc(ctx, file)
	}
	return &models.UploadResult{URL: "/uploads/stories/" + file.Name, Filename: file.Name}, nil
}

func (m *MockUploadService) DiscardImage(ctx context.Context, filename string) {
	m.Discarded = append(m.Discarded, filename)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	Stats *models.DashboardStats
	Err   error
}

var _ service.StatsService = (*MockStatsService)(nil)

func (m *MockStatsService) Get(ctx context.Context) (*models.DashboardStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stats == nil {
		return &models.DashboardStats{}, nil
	}
	return m.Stats, nil
}

// NewMockServices returns a Services set backed entirely by mocks
func NewMockServices() (*service.Services, *MockServiceSet) {
	set := &MockServiceSet{
		Auth:       NewMockAuthService(),
		Story:      NewMockStoryService(),
		Submission: NewMockSubmissionService(),
		Analytics:  NewMockAnalyticsService(),
		Upload:     &MockUploadService{},
		Stats:      &MockStatsService{},
	}
	return &service.Services{
		Auth:       set.Auth,
		Story:      set.Story,
		Submission: set.Submission,
		Analytics:  set.Analytics,
		Upload:     set.Upload,
		Stats:      set.Stats,
	}, set
}

// MockServiceSet gives tests typed access to the mocks behind NewMockServices
type MockServiceSet struct {
	Auth       *MockAuthService
	Story      *MockStoryService
	Submission *MockSubmissionService
	Analytics  *MockAnalyticsService
	Upload     *MockUploadService
	Stats      *MockStatsService
}
