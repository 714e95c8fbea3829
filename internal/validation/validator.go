package validation

import (
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
)

// field pairs a wire name with its submitted value, in reporting order
type field struct {
	name  string
	value string
}

// Column widths of the VARCHAR columns, in characters
const (
	maxNameLength  = 255
	maxGroupLength = 100
)

// bounded is a field with the width of its column
type bounded struct {
	field
	max int
}

// ValidateSubmission checks the public submission form.
// Only the first problem is reported, in form order.
func ValidateSubmission(in *models.SubmissionInput) error {
	if err := requireAll(
		field{"title", in.Title},
		field{"description", in.Description},
		field{"location", in.Location},
		field{"region", in.Region},
		field{"theme", in.Theme},
		field{"innovator_name", in.InnovatorName},
		field{"contact_email", in.ContactEmail},
	); err != nil {
		return err
	}
	if err := checkLengths(
		bounded{field{"title", in.Title}, maxNameLength},
		bounded{field{"location", in.Location}, maxNameLength},
		bounded{field{"region", in.Region}, maxGroupLength},
		bounded{field{"theme", in.Theme}, maxGroupLength},
		bounded{field{"innovator_name", in.InnovatorName}, maxNameLength},
		bounded{field{"contact_email", in.ContactEmail}, maxNameLength},
	); err != nil {
		return err
	}

	if !IsEmail(in.ContactEmail) {
		return apperror.Validation("contact_email", "Invalid email address")
	}
	return nil
}

// ValidateStory checks the fields an admin must supply when creating a story
func ValidateStory(in *models.StoryInput) error {
	if err := requireAll(
		field{"title", in.Title},
		field{"description", in.Description},
		field{"location", in.Location},
		field{"region", in.Region},
		field{"theme", in.Theme},
		field{"innovator_name", in.InnovatorName},
	); err != nil {
		return err
	}
	if err := checkLengths(
		bounded{field{"title", in.Title}, maxNameLength},
		bounded{field{"location", in.Location}, maxNameLength},
		bounded{field{"region", in.Region}, maxGroupLength},
		bounded{field{"theme", in.Theme}, maxGroupLength},
		bounded{field{"innovator_name", in.InnovatorName}, maxNameLength},
		bounded{field{"contact_email", in.ContactEmail}, maxNameLength},
	); err != nil {
		return err
	}

	if in.ContactEmail != "" && !IsEmail(in.ContactEmail) {
		return apperror.Validation("contact_email", "Invalid email address")
	}
	if in.BeneficiariesCount < 0 {
		return apperror.Validation("beneficiaries_count", "beneficiaries_count cannot be negative")
	}
	return nil
}

// ValidateLogin checks that both credentials were supplied
func ValidateLogin(in *models.LoginRequest) error {
	err := ozzo.ValidateStruct(in,
		ozzo.Field(&in.Email, ozzo.Required),
		ozzo.Field(&in.Password, ozzo.Required),
	)
	if err != nil {
		return apperror.Validation("", "Email and password are required")
	}
	return nil
}

// ValidateEvent checks a public analytics event
func ValidateEvent(in *models.AnalyticsInput) error {
	if err := ozzo.Validate(strings.TrimSpace(in.EventType), ozzo.Required, ozzo.Length(1, 100)); err != nil {
		return apperror.Validation("event_type", "event_type is required")
	}
	return nil
}

// IsEmail reports whether s has a standard email shape. No DNS lookup is made.
func IsEmail(s string) bool {
	if s == "" {
		return false
	}
	return ozzo.Validate(s, is.EmailFormat) == nil
}

func requireAll(fields ...field) error {
	for _, f := range fields {
		if err := ozzo.Validate(strings.TrimSpace(f.value), ozzo.Required); err != nil {
			return apperror.Required(f.name)
		}
	}
	return nil
}

func checkLengths(fields ...bounded) error {
	for _, f := range fields {
		if err := ozzo.Validate(f.value, ozzo.RuneLength(0, f.max)); err != nil {
			return apperror.Validation(f.name, fmt.Sprintf("Field '%s' must be at most %d characters", f.name, f.max))
		}
	}
	return nil
}
