package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
)

func validSubmission() *models.SubmissionInput {
	return &models.SubmissionInput{
		Title:         "Clean Water Project",
		Description:   "Filtering water for 2,000 households.",
		Location:      "Kakuma, Kenya",
		Region:        "East Africa",
		Theme:         "Water & Sanitation",
		InnovatorName: "Amina Yusuf",
		ContactEmail:  "amina@example.org",
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.SubmissionInput)
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid submission",
			mutate: func(*models.SubmissionInput) {},
		},
		{
			name:      "missing title",
			mutate:    func(s *models.SubmissionInput) { s.Title = "" },
			wantField: "title",
			wantMsg:   "Field 'title' is required",
		},
		{
			name:      "whitespace innovator name",
			mutate:    func(s *models.SubmissionInput) { s.InnovatorName = "   " },
			wantField: "innovator_name",
			wantMsg:   "Field 'innovator_name' is required",
		},
		{
			name: "first missing field is reported",
			mutate: func(s *models.SubmissionInput) {
				s.Region = ""
				s.Theme = ""
				s.ContactEmail = ""
			},
			wantField: "region",
			wantMsg:   "Field 'region' is required",
		},
		{
			name:      "missing contact email",
			mutate:    func(s *models.SubmissionInput) { s.ContactEmail = "" },
			wantField: "contact_email",
			wantMsg:   "Field 'contact_email' is required",
		},
		{
			name:      "malformed contact email",
			mutate:    func(s *models.SubmissionInput) { s.ContactEmail = "not-an-email" },
			wantField: "contact_email",
			wantMsg:   "Invalid email address",
		},
		{
			name:   "title at column width",
			mutate: func(s *models.SubmissionInput) { s.Title = strings.Repeat("é", 255) },
		},
		{
			name:      "title over column width",
			mutate:    func(s *models.SubmissionInput) { s.Title = strings.Repeat("a", 256) },
			wantField: "title",
			wantMsg:   "Field 'title' must be at most 255 characters",
		},
		{
			name:      "region over column width",
			mutate:    func(s *models.SubmissionInput) { s.Region = strings.Repeat("r", 101) },
			wantField: "region",
			wantMsg:   "Field 'region' must be at most 100 characters",
		},
		{
			name:   "optional fields may be empty",
			mutate: func(s *models.SubmissionInput) { s.Impact = ""; s.ContactInfo = ""; s.ImageURL = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmission()
			tt.mutate(in)
			err := ValidateSubmission(in)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateSubmission() unexpected error: %v", err)
				}
				return
			}

			var vErr *apperror.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("ValidateSubmission() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
			if vErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", vErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateStory(t *testing.T) {
	valid := models.StoryInput{
		Title:         "Solar Lamps",
		Description:   "Lighting for night classes.",
		Location:      "Zaatari, Jordan",
		Region:        "Middle East",
		Theme:         "Energy",
		InnovatorName: "Omar Haddad",
	}

	if err := ValidateStory(&valid); err != nil {
		t.Fatalf("ValidateStory(valid) = %v", err)
	}

	noTheme := valid
	noTheme.Theme = ""
	var vErr *apperror.ValidationError
	if err := ValidateStory(&noTheme); !errors.As(err, &vErr) || vErr.Field != "theme" {
		t.Errorf("ValidateStory(noTheme) = %v, want theme validation error", err)
	}

	// contact email is optional on stories but must be well-formed when present
	badEmail := valid
	badEmail.ContactEmail = "omar-at-example"
	if err := ValidateStory(&badEmail); !errors.As(err, &vErr) || vErr.Field != "contact_email" {
		t.Errorf("ValidateStory(badEmail) = %v, want contact_email validation error", err)
	}

	longTitle := valid
	longTitle.Title = strings.Repeat("t", 256)
	if err := ValidateStory(&longTitle); !errors.As(err, &vErr) || vErr.Field != "title" {
		t.Errorf("ValidateStory(longTitle) = %v, want title validation error", err)
	}

	negative := valid
	negative.BeneficiariesCount = -1
	if err := ValidateStory(&negative); !errors.As(err, &vErr) || vErr.Field != "beneficiaries_count" {
		t.Errorf("ValidateStory(negative) = %v, want beneficiaries_count validation error", err)
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr bool
	}{
		{"both present", models.LoginRequest{Email: "admin@example.org", Password: "secret"}, false},
		{"missing password", models.LoginRequest{Email: "admin@example.org"}, true},
		{"missing email", models.LoginRequest{Password: "secret"}, true},
		{"both missing", models.LoginRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := ValidateLogin(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLogin() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	if err := ValidateEvent(&models.AnalyticsInput{EventType: "page_view"}); err != nil {
		t.Errorf("ValidateEvent(page_view) = %v", err)
	}
	if err := ValidateEvent(&models.AnalyticsInput{EventType: "  "}); err == nil {
		t.Error("ValidateEvent(blank) should fail")
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"test@example.com", "first.last+tag@sub.example.org"}
	invalid := []string{"", "not-an-email", "missing@", "@example.com", "two@@example.com"}

	for _, e := range valid {
		if !IsEmail(e) {
			t.Errorf("IsEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsEmail(e) {
			t.Errorf("IsEmail(%q) = true, want false", e)
		}
	}
}
