package service

import (
	"context"
	"fmt"
	"time"

	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/textutil"
)

const maxSlugAttempts = 50

// uniqueSlug returns the slug for title, suffixed with the time of now when taken
func uniqueSlug(ctx context.Context, stories repository.StoryRepository, title string, now time.Time) (string, error) {
	base := textutil.Slugify(title)

	taken, err := stories.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if !taken {
		return base, nil
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := textutil.SuffixSlug(base, now, attempt)
		taken, err := stories.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

// insertStory assigns a unique slug and inserts the story. With retries > 0 a
// concurrent insert that claimed the same slug is retried with a fresh lookup.
// Inside a transaction retries must be 0: PostgreSQL aborts the transaction on the violation.
func insertStory(ctx context.Context, stories repository.StoryRepository, story *models.Story, now time.Time, retries int) error {
	for {
		slug, err := uniqueSlug(ctx, stories, story.Title, now)
		if err != nil {
			return err
		}
		story.Slug = slug

		err = stories.Create(ctx, story)
		if err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) || retries <= 0 {
			return fmt.Errorf("failed to insert story: %w", err)
		}
		retries--
	}
}
