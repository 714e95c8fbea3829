package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/textutil"
	"github.com/refugee-innovation-hub/internal/validation"
	"github.com/rs/zerolog"
)

// submissionService is the concrete implementation of SubmissionService
type submissionService struct {
	repos     *repository.Repositories
	analytics AnalyticsService
	uploads   UploadService
	now       func() time.Time
	log       zerolog.Logger
}

func newSubmissionService(
	repos *repository.Repositories,
	analytics AnalyticsService,
	uploads UploadService,
	now func() time.Time,
	log zerolog.Logger,
) *submissionService {
	return &submissionService{
		repos:     repos,
		analytics: analytics,
		uploads:   uploads,
		now:       now,
		log:       log.With().Str("service", "review").Logger(),
	}
}

// Submit validates and stores a public submission as pending.
// A non-empty image_url wins over an attached file; the file is then not stored at all.
func (s *submissionService) Submit(ctx context.Context, in *models.SubmissionInput, image *ImageFile) (*models.Submission, error) {
	if err := validation.ValidateSubmission(in); err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	var storedImage string
	if imageURL == "" && image != nil {
		res, err := s.uploads.StoreImage(ctx, image)
		if err != nil {
			s.log.Warn().Err(err).Str("filename", image.Name).Msg("Ignoring submission image")
		} else {
			imageURL = res.URL
			storedImage = res.Filename
		}
	}

	sub := &models.Submission{
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		Region:        in.Region,
		Theme:         in.Theme,
		InnovatorName: in.InnovatorName,
		Impact:        in.Impact,
		ContactEmail:  in.ContactEmail,
		ContactInfo:   in.ContactInfo,
		ImageURL:      imageURL,
		Status:        models.SubmissionPending,
	}
	if err := s.repos.Submission.Create(ctx, sub); err != nil {
		if storedImage != "" {
			s.uploads.DiscardImage(ctx, storedImage)
		}
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.log.Info().Int64("submission_id", sub.ID).Msg("Submission received")
	s.analytics.Track(ctx, models.EventSubmission, nil, map[string]interface{}{
		"submission_id": sub.ID,
		"type":          "story_submission",
	})
	return sub, nil
}

// List returns submissions with the given status, pending by default
func (s *submissionService) List(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error) {
	switch status {
	case "":
		status = models.SubmissionPending
	case "all":
		status = ""
	case models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected:
	default:
		return nil, apperror.Validation("status", "Invalid status")
	}

	subs, err := s.repos.Submission.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// SetStatus reviews a pending submission. Approval publishes it as a story in
// the same transaction. Repeating the same decision is a no-op; reversing it is refused.
func (s *submissionService) SetStatus(ctx context.Context, id int64, status models.SubmissionStatus) (*models.ReviewResult, error) {
	if status == "" {
		return nil, apperror.Validation("status", "Status is required")
	}
	if !status.IsTerminal() {
		return nil, apperror.Validation("status", "Status must be 'approved' or 'rejected'")
	}

	result := &models.ReviewResult{SubmissionID: id, Status: status}
	now := s.now()

	err := s.repos.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		sub, err := tx.Submission.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load submission: %w", err)
		}
		if sub == nil {
			return apperror.NotFound("submission")
		}

		if sub.Status != models.SubmissionPending {
			if sub.Status == status {
				result.Unchanged = true
				return nil
			}
			return apperror.ErrInvalidTransition
		}

		if err := tx.Submission.UpdateStatus(ctx, id, status); err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		if status != models.SubmissionApproved {
			return nil
		}

		story := storyFromSubmission(sub)
		if err := insertStory(ctx, tx.Story, story, now, 0); err != nil {
			return err
		}
		result.StoryID = story.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Unchanged {
		s.log.Info().Int64("submission_id", id).Str("status", string(status)).Msg("Submission already reviewed")
		return result, nil
	}

	s.log.Info().Int64("submission_id", id).Str("status", string(status)).Int64("story_id", result.StoryID).Msg("Submission reviewed")
	if status == models.SubmissionApproved {
		s.analytics.Track(ctx, models.EventSubmissionApproved, &result.StoryID, map[string]interface{}{
			"submission_id": id,
		})
	}
	return result, nil
}

func storyFromSubmission(sub *models.Submission) *models.Story {
	// a blank impact counts as missing, not only a NULL one
	impact := sub.Impact
	if strings.TrimSpace(impact) == "" {
		impact = models.DefaultImpact
	}
	return &models.Story{
		Title:         sub.Title,
		Summary:       textutil.Summarize(sub.Description),
		Description:   sub.Description,
		Location:      sub.Location,
		Region:        sub.Region,
		Theme:         sub.Theme,
		ImageURL:      sub.ImageURL,
		InnovatorName: sub.InnovatorName,
		Impact:        impact,
		ContactEmail:  sub.ContactEmail,
		ContactInfo:   sub.ContactInfo,
	}
}
