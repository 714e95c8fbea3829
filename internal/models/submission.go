package models

import (
	"time"
)

// SubmissionStatus represents the review state of a submission
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// IsTerminal reports whether the status ends the review
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// Submission is a user-proposed story awaiting review
type Submission struct {
	ID            int64            `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description" db:"description"`
	Location      string           `json:"location" db:"location"`
	Region        string           `json:"region" db:"region"`
	Theme         string           `json:"theme" db:"theme"`
	InnovatorName string           `json:"innovator_name" db:"innovator_name"`
	Impact        string           `json:"impact" db:"impact"`
	ContactEmail  string           `json:"contact_email" db:"contact_email"`
	ContactInfo   string           `json:"contact_info" db:"contact_info"`
	ImageURL      string           `json:"image_url" db:"image_url"`
	Status        SubmissionStatus `json:"status" db:"status"`
	SubmittedAt   time.Time        `json:"submitted_at" db:"submitted_at"`
}

// SubmissionInput is the public submission form, sent as JSON or multipart
type SubmissionInput struct {
	Title         string `json:"title" form:"title"`
	Description   string `json:"description" form:"description"`
	Location      string `json:"location" form:"location"`
	Region        string `json:"region" form:"region"`
	Theme         string `json:"theme" form:"theme"`
	InnovatorName string `json:"innovator_name" form:"innovator_name"`
	Impact        string `json:"impact" form:"impact"`
	ContactEmail  string `json:"contact_email" form:"contact_email"`
	ContactInfo   string `json:"contact_info" form:"contact_info"`
	ImageURL      string `json:"image_url" form:"image_url"`
}

// StatusUpdate is the body of PUT /api/submissions
type StatusUpdate struct {
	Status SubmissionStatus `json:"status"`
}

// ReviewResult describes the outcome of a status change
type ReviewResult struct {
	SubmissionID int64            `json:"submission_id"`
	Status       SubmissionStatus `json:"status"`
	StoryID      int64            `json:"story_id,omitempty"`
	Unchanged    bool             `json:"unchanged,omitempty"`
}
