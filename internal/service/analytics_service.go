package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/validation"
	"github.com/rs/zerolog"
)

// Analytics listing bounds
const (
	DefaultAnalyticsLimit = 100
	MaxAnalyticsLimit     = 1000
)

// analyticsService is the concrete implementation of AnalyticsService
type analyticsService struct {
	events repository.AnalyticsRepository
	log    zerolog.Logger
}

func newAnalyticsService(events repository.AnalyticsRepository, log zerolog.Logger) *analyticsService {
	return &analyticsService{
		events: events,
		log:    log.With().Str("service", "analytics").Logger(),
	}
}

func (s *analyticsService) Track(ctx context.Context, eventType string, storyID *int64, metadata map[string]interface{}) {
	event, err := newEvent(eventType, storyID, metadata)
	if err == nil {
		err = s.events.Create(ctx, event)
	}
	if err != nil {
		logEvt := s.log.Warn().Err(err).Str("event_type", eventType)
		if storyID != nil {
			logEvt = logEvt.Int64("story_id", *storyID)
		}
		logEvt.Msg("Failed to record analytics event")
	}
}

// Record stores a client-reported event
func (s *analyticsService) Record(ctx context.Context, in *models.AnalyticsInput) (*models.AnalyticsEvent, error) {
	if err := validation.ValidateEvent(in); err != nil {
		return nil, err
	}

	event, err := newEvent(in.EventType, in.StoryID, in.Metadata)
	if err != nil {
		return nil, apperror.Validation("metadata", "metadata must be a JSON object")
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return event, nil
}

// List returns events newest first. Limit defaults to 100 and is capped at 1000.
func (s *analyticsService) List(ctx context.Context, filter models.AnalyticsFilter) ([]*models.AnalyticsEvent, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAnalyticsLimit
	}
	if filter.Limit > MaxAnalyticsLimit {
		filter.Limit = MaxAnalyticsLimit
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func newEvent(eventType string, storyID *int64, metadata map[string]interface{}) (*models.AnalyticsEvent, error) {
	raw := json.RawMessage(`{}`)
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		raw = b
	}
	return &models.AnalyticsEvent{EventType: eventType, StoryID: storyID, Metadata: raw}, nil
}
