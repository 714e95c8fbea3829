package service

import (
	"context"
	"fmt"

	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
)

type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

func (s *statsService) Get(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.PublishedStories, err = s.repos.Story.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count stories: %w", err)
	}
	if stats.TotalViews, err = s.repos.Story.TotalViews(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum views: %w", err)
	}
	if stats.PendingSubmissions, err = s.repos.Submission.Count(ctx, models.SubmissionPending); err != nil {
		return nil, fmt.Errorf("failed to count pending submissions: %w", err)
	}
	if stats.TotalSubmissions, err = s.repos.Submission.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	return &stats, nil
}
