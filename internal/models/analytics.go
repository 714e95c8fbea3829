package models

import (
	"encoding/json"
	"time"
)

// Analytics event types. story_view is posted by the client.
const (
	EventSubmission         = "submission"
	EventSubmissionApproved = "submission_approved"
	EventStoryView          = "story_view"
)

// AnalyticsEvent is an append-only usage record.
// StoryID is a soft reference: the story may have been deleted since.
type AnalyticsEvent struct {
	ID        int64           `json:"id" db:"id"`
	EventType string          `json:"event_type" db:"event_type"`
	StoryID   *int64          `json:"story_id" db:"story_id"`
	Metadata  json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// AnalyticsInput is the body of POST /api/analytics
type AnalyticsInput struct {
	EventType string                 `json:"event_type"`
	StoryID   *int64                 `json:"story_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// AnalyticsFilter selects events for GET /api/analytics
type AnalyticsFilter struct {
	EventType string
	StoryID   *int64
	Limit     int
}

// DashboardStats summarises the catalog for the admin dashboard
type DashboardStats struct {
	PublishedStories   int   `json:"publishedStories"`
	TotalViews         int64 `json:"totalViews"`
	PendingSubmissions int   `json:"pendingSubmissions"`
	TotalSubmissions   int   `json:"totalSubmissions"`
}

// UploadResult is returned after an image has been stored
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
