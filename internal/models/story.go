package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImpact is used when an approved submission carries no impact text
const DefaultImpact = "Making a positive impact in the community."

// Story is a published catalog entry
type Story struct {
	ID                 int64               `json:"id" db:"id"`
	Title              string              `json:"title" db:"title"`
	Slug               string              `json:"slug" db:"slug"`
	Summary            string              `json:"summary" db:"summary"`
	Description        string              `json:"description" db:"description"`
	Location           string              `json:"location" db:"location"`
	Region             string              `json:"region" db:"region"`
	Theme              string              `json:"theme" db:"theme"`
	Latitude           decimal.NullDecimal `json:"latitude" db:"latitude"`
	Longitude          decimal.NullDecimal `json:"longitude" db:"longitude"`
	ImageURL           string              `json:"image_url" db:"image_url"`
	InnovatorName      string              `json:"innovator_name" db:"innovator_name"`
	BeneficiariesCount int                 `json:"beneficiaries_count" db:"beneficiaries_count"`
	Impact             string              `json:"impact" db:"impact"`
	ContactEmail       string              `json:"contact_email" db:"contact_email"`
	ContactInfo        string              `json:"contact_info" db:"contact_info"`
	IsFeatured         bool                `json:"is_featured" db:"is_featured"`
	ViewCount          int                 `json:"view_count" db:"view_count"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// StoryInput carries every editable story field.
// It is used for create and for full replace: omitted fields take their zero value.
type StoryInput struct {
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Location           string              `json:"location"`
	Region             string              `json:"region"`
	Theme              string              `json:"theme"`
	Latitude           decimal.NullDecimal `json:"latitude"`
	Longitude          decimal.NullDecimal `json:"longitude"`
	ImageURL           string              `json:"image_url"`
	InnovatorName      string              `json:"innovator_name"`
	BeneficiariesCount int                 `json:"beneficiaries_count"`
	Impact             string              `json:"impact"`
	ContactEmail       string              `json:"contact_email"`
	ContactInfo        string              `json:"contact_info"`
	IsFeatured         bool                `json:"is_featured"`
}

// StoryPatch carries a partial update: nil fields are left untouched
type StoryPatch struct {
	Title              *string          `json:"title"`
	Description        *string          `json:"description"`
	Location           *string          `json:"location"`
	Region             *string          `json:"region"`
	Theme              *string          `json:"theme"`
	Latitude           *decimal.Decimal `json:"latitude"`
	Longitude          *decimal.Decimal `json:"longitude"`
	ImageURL           *string          `json:"image_url"`
	InnovatorName      *string          `json:"innovator_name"`
	BeneficiariesCount *int             `json:"beneficiaries_count"`
	Impact             *string          `json:"impact"`
	ContactEmail       *string          `json:"contact_email"`
	ContactInfo        *string          `json:"contact_info"`
	IsFeatured         *bool            `json:"is_featured"`
}

// StoryFilter selects stories for the public listing.
// Nil or empty fields are ignored.
type StoryFilter struct {
	Featured *bool
	Region   string
	Theme    string
}

// Apply copies the input fields onto the story, leaving id, slug, counters and timestamps alone
func (in *StoryInput) Apply(s *Story) {
	s.Title = in.Title
	s.Description = in.Description
	s.Location = in.Location
	s.Region = in.Region
	s.Theme = in.Theme
	s.Latitude = in.Latitude
	s.Longitude = in.Longitude
	s.ImageURL = in.ImageURL
	s.InnovatorName = in.InnovatorName
	s.BeneficiariesCount = in.BeneficiariesCount
	s.Impact = in.Impact
	s.ContactEmail = in.ContactEmail
	s.ContactInfo = in.ContactInfo
	s.IsFeatured = in.IsFeatured
}

// Input returns the editable fields of the story
func (s *Story) Input() StoryInput {
	return StoryInput{
		Title:              s.Title,
		Description:        s.Description,
		Location:           s.Location,
		Region:             s.Region,
		Theme:              s.Theme,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		ImageURL:           s.ImageURL,
		InnovatorName:      s.InnovatorName,
		BeneficiariesCount: s.BeneficiariesCount,
		Impact:             s.Impact,
		ContactEmail:       s.ContactEmail,
		ContactInfo:        s.ContactInfo,
		IsFeatured:         s.IsFeatured,
	}
}

// Apply copies the non-nil patch fields onto the story
func (p *StoryPatch) Apply(s *Story) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Region != nil {
		s.Region = *p.Region
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Latitude != nil {
		s.Latitude = decimal.NewNullDecimal(*p.Latitude)
	}
	if p.Longitude != nil {
		s.Longitude = decimal.NewNullDecimal(*p.Longitude)
	}
	if p.ImageURL != nil {
		s.ImageURL = *p.ImageURL
	}
	if p.InnovatorName != nil {
		s.InnovatorName = *p.InnovatorName
	}
	if p.BeneficiariesCount != nil {
		s.BeneficiariesCount = *p.BeneficiariesCount
	}
	if p.Impact != nil {
		s.Impact = *p.Impact
	}
	if p.ContactEmail != nil {
		s.ContactEmail = *p.ContactEmail
	}
	if p.ContactInfo != nil {
		s.ContactInfo = *p.ContactInfo
	}
	if p.IsFeatured != nil {
		s.IsFeatured = *p.IsFeatured
	}
}
