package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu                   sync.Mutex
	Users                map[int64]*models.User
	EmailToUser          map[string]*models.User
	InsertError          error
	GetError             error
	UpdateLastLoginError error
	LastLoginCalls       int
	nextID               int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLoginCalls++
	if m.UpdateLastLoginError != nil {
		return m.UpdateLastLoginError
	}
	if u, ok := m.Users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

// MockStoryRepository is a mock implementation of StoryRepository
type MockStoryRepository struct {
	mu          sync.Mutex
	Stories     map[int64]*models.Story
	InsertError error
	QueryError  error
	// CreateFunc, when set, runs before the default insert and may veto it
	CreateFunc  func(ctx context.Context, story *models.Story) error
	CreateCalls int
	nextID      int64
}

func NewMockStoryRepository() *MockStoryRepository {
	return &MockStoryRepository{Stories: make(map[int64]*models.Story)}
}

func (m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, story); err != nil {
			return err
		}
	}
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	story.ID = m.nextID
	now := time.Now()
	story.CreatedAt, story.UpdatedAt = now, now
	stored := *story
	m.Stories[story.ID] = &stored
	return nil
}

func (m *MockStoryRepository) GetForUpdate(ctx context.Context, id int64) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.copyOf(id), nil
}

func (m *MockStoryRepository) IncrementViewCount(ctx context.Context, id int64) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	s, ok := m.Stories[id]
	if !ok {
		return nil, nil
	}
	s.ViewCount++
	return m.copyOf(id), nil
}

func (m *MockStoryRepository) List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	out := make([]*models.Story, 0)
	for id, s := range m.Stories {
		if filter.Featured != nil && s.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Region != "" && s.Region != filter.Region {
			continue
		}
		if filter.Theme != "" && s.Theme != filter.Theme {
			continue
		}
		out = append(out, m.copyOf(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockStoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return false, m.QueryError
	}
	for _, s := range m.Stories {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStoryRepository) Replace(ctx context.Context, story *models.Story) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return false, m.InsertError
	}
	existing, ok := m.Stories[story.ID]
	if !ok {
		return false, nil
	}
	updated := *story
	updated.Slug = existing.Slug
	updated.ViewCount = existing.ViewCount
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.Stories[story.ID] = &updated
	story.UpdatedAt = updated.UpdatedAt
	return true, nil
}

func (m *MockStoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Stories[id]; !ok {
		return false, nil
	}
	delete(m.Stories, id)
	return true, nil
}

func (m *MockStoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Stories), m.QueryError
}

func (m *MockStoryRepository) TotalViews(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, s := range m.Stories {
		total += int64(s.ViewCount)
	}
	return total, m.QueryError
}

// Put seeds a story with a fixed id
func (m *MockStoryRepository) Put(story *models.Story) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *story
	m.Stories[story.ID] = &stored
	if story.ID > m.nextID {
		m.nextID = story.ID
	}
}

// Snapshot returns a copy of a stored story
func (m *MockStoryRepository) Snapshot(id int64) *models.Story {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copyOf(id)
}

func (m *MockStoryRepository) copyOf(id int64) *models.Story {
	s, ok := m.Stories[id]
	if !ok {
		return nil
	}
	c := *s
	return &c
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mu          sync.Mutex
	Submissions map[int64]*models.Submission
	InsertError error
	UpdateError error
	nextID      int64
}

func NewMockSubmissionRepository() *MockSubmissionRepository {
	return &MockSubmissionRepository{Submissions: make(map[int64]*models.Submission)}
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	sub.ID = m.nextID
	sub.SubmittedAt = time.Now()
	stored := *sub
	m.Submissions[sub.ID] = &stored
	return nil
}

func (m *MockSubmissionRepository) GetForUpdate(ctx context.Context, id int64) (*models.Submission, error) {
	return m.Snapshot(id), nil
}

func (m *MockSubmissionRepository) List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Submission, 0)
	for _, s := range m.Submissions {
		if status != "" && s.Status != status {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockSubmissionRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if s, ok := m.Submissions[id]; ok {
		s.Status = status
	}
	return nil
}

func (m *MockSubmissionRepository) Count(ctx context.Context, status models.SubmissionStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.Submissions {
		if status == "" || s.Status == status {
			n++
		}
	}
	return n, nil
}

// Put seeds a submission with a fixed id
func (m *MockSubmissionRepository) Put(sub *models.Submission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *sub
	m.Submissions[sub.ID] = &stored
	if sub.ID > m.nextID {
		m.nextID = sub.ID
	}
}

// Snapshot returns a copy of a stored submission
func (m *MockSubmissionRepository) Snapshot(id int64) *models.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Submissions[id]
	if !ok {
		return nil
	}
	c := *s
	return &c
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository
type MockAnalyticsRepository struct {
	mu          sync.Mutex
	Events      []*models.AnalyticsEvent
	InsertError error
	LastFilter  models.AnalyticsFilter
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{}
}

func (m *MockAnalyticsRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	event.ID = int64(len(m.Events) + 1)
	event.CreatedAt = time.Now()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockAnalyticsRepository) List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFilter = filter
	out := make([]*models.AnalyticsEvent, 0)
	for i := len(m.Events) - 1; i >= 0 && len(out) < filter.Limit; i-- {
		e := m.Events[i]
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if filter.StoryID != nil && (e.StoryID == nil || *e.StoryID != *filter.StoryID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ByType returns recorded events of one type, oldest first
func (m *MockAnalyticsRepository) ByType(eventType string) []*models.AnalyticsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.AnalyticsEvent
	for _, e := range m.Events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// MockTransactor runs transactions one at a time against the shared mock repositories.
// Serialising them stands in for the row locks a real database would take.
// On error the story and submission tables are restored to their state before fn.
type MockTransactor struct {
	mu        sync.Mutex
	Repos     *repository.Repositories
	owner     *MockRepositories
	Calls     int
	Rollbacks int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *repository.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	var stories map[int64]*models.Story
	var subs map[int64]*models.Submission
	if m.owner != nil {
		stories = m.owner.Stories.snapshot()
		subs = m.owner.Submissions.snapshot()
	}

	err := fn(ctx, m.Repos)
	if err != nil {
		m.Rollbacks++
		if m.owner != nil {
			m.owner.Stories.restore(stories)
			m.owner.Submissions.restore(subs)
		}
	}
	return err
}

func (m *MockStoryRepository) snapshot() map[int64]*models.Story {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int64]*models.Story, len(m.Stories))
	for id := range m.Stories {
		out[id] = m.copyOf(id)
	}
	return out
}

func (m *MockStoryRepository) restore(stories map[int64]*models.Story) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stories = stories
}

func (m *MockSubmissionRepository) snapshot() map[int64]*models.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int64]*models.Submission, len(m.Submissions))
	for id, s := range m.Submissions {
		c := *s
		out[id] = &c
	}
	return out
}

func (m *MockSubmissionRepository) restore(subs map[int64]*models.Submission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submissions = subs
}

// MockRepositories bundles the mock repositories with typed access for assertions
type MockRepositories struct {
	Users       *MockUserRepository
	Stories     *MockStoryRepository
	Submissions *MockSubmissionRepository
	Analytics   *MockAnalyticsRepository
	Tx          *MockTransactor
}

func NewMockRepositories() *MockRepositories {
	m := &MockRepositories{
		Users:       NewMockUserRepository(),
		Stories:     NewMockStoryRepository(),
		Submissions: NewMockSubmissionRepository(),
		Analytics:   NewMockAnalyticsRepository(),
		Tx:          &MockTransactor{},
	}
	m.Tx.owner = m
	return m
}

// Repositories returns the repository set backed by the mocks
func (m *MockRepositories) Repositories() *repository.Repositories {
	repos := &repository.Repositories{
		User:       m.Users,
		Story:      m.Stories,
		Submission: m.Submissions,
		Analytics:  m.Analytics,
		Tx:         m.Tx,
	}
	m.Tx.Repos = repos
	return repos
}
