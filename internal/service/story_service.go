package service

import (
	"context"
	"fmt"
	"time"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/textutil"
	"github.com/refugee-innovation-hub/internal/validation"
	"github.com/rs/zerolog"
)

// slugRetries bounds re-slugging after a concurrent insert took the same slug
const slugRetries = 2

// storyService is the concrete implementation of StoryService
type storyService struct {
	repos *repository.Repositories
	now   func() time.Time
	log   zerolog.Logger
}

func newStoryService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *storyService {
	return &storyService{
		repos: repos,
		now:   now,
		log:   log.With().Str("service", "story").Logger(),
	}
}

func (s *storyService) List(ctx context.Context, filter models.StoryFilter) ([]*models.Story, error) {
	stories, err := s.repos.Story.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// Get returns a story and counts the view. View analytics events are
// posted by the client, so none is recorded here.
func (s *storyService) Get(ctx context.Context, id int64) (*models.Story, error) {
	story, err := s.repos.Story.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	if story == nil {
		return nil, apperror.NotFound("story")
	}
	return story, nil
}

func (s *storyService) Create(ctx context.Context, in *models.StoryInput) (*models.Story, error) {
	if err := validation.ValidateStory(in); err != nil {
		return nil, err
	}

	story := &models.Story{}
	in.Apply(story)
	story.Summary = textutil.Summarize(story.Description)

	if err := insertStory(ctx, s.repos.Story, story, s.now(), slugRetries); err != nil {
		return nil, err
	}

	s.log.Info().Int64("story_id", story.ID).Str("slug", story.Slug).Msg("Story created")
	return story, nil
}

// Replace overwrites every editable field. The slug never changes.
func (s *storyService) Replace(ctx context.Context, id int64, in *models.StoryInput) error {
	if err := validation.ValidateStory(in); err != nil {
		return err
	}

	story := &models.Story{ID: id}
	in.Apply(story)
	story.Summary = textutil.Summarize(story.Description)

	ok, err := s.repos.Story.Replace(ctx, story)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if !ok {
		return apperror.NotFound("story")
	}
	return nil
}

// Patch applies only the supplied fields, under a row lock
func (s *storyService) Patch(ctx context.Context, id int64, patch *models.StoryPatch) (*models.Story, error) {
	var updated *models.Story

	err := s.repos.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		story, err := tx.Story.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load story: %w", err)
		}
		if story == nil {
			return apperror.NotFound("story")
		}

		patch.Apply(story)
		in := story.Input()
		if err := validation.ValidateStory(&in); err != nil {
			return err
		}
		story.Summary = textutil.Summarize(story.Description)

		if _, err := tx.Story.Replace(ctx, story); err != nil {
			return fmt.Errorf("failed to update story: %w", err)
		}
		updated = story
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a story. Analytics rows keep their story_id.
func (s *storyService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repos.Story.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if !ok {
		return apperror.NotFound("story")
	}
	s.log.Info().Int64("story_id", id).Msg("Story deleted")
	return nil
}
