package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/session"
	"github.com/refugee-innovation-hub/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users    repository.UserRepository
	sessions session.Store
	now      func() time.Time
	log      zerolog.Logger
}

func newAuthService(users repository.UserRepository, sessions session.Store, now func() time.Time, log zerolog.Logger) *authService {
	return &authService{
		users:    users,
		sessions: sessions,
		now:      now,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Login verifies credentials and opens a session.
// Unknown email, inactive account and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, *models.PublicUser, error) {
	if err := validation.ValidateLogin(req); err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.Error().Err(err).Int64("user_id", user.ID).Msg("Stored password hash is unusable")
		}
		return nil, nil, apperror.ErrInvalidCredentials
	}

	now := s.now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to record last login")
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	public := user.Public()
	return sess, &public, nil
}

func (s *authService) CurrentSession(ctx context.Context, id string) *models.Session {
	if id == "" {
		return nil
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Msg("Session lookup failed")
		return nil
	}
	return sess
}

func (s *authService) Logout(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) Check(ctx context.Context, sess *models.Session) (*models.PublicUser, error) {
	if sess == nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, nil
	}
	public := user.Public()
	return &public, nil
}
