package auth

import (
	"context"
	"errors"
	"strings"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/metrics"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories"
	"kycdesk/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	Role        models.Role `json:"role"`
	Region      string      `json:"region"`
}

// AuditRecorder writes best-effort audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, actor uuid.UUID, region, action string, status models.AuditStatus, details string)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate resolves a bearer token and checks its subject still exists.
	Authenticate(ctx context.Context, token string) (models.Principal, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	tokens   *TokenIssuer
	audit    AuditRecorder
	metrics  *metrics.Metrics
}

func NewService(userRepo repositories.UserRepository, tokens *TokenIssuer, audit AuditRecorder, m *metrics.Metrics) Service {
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		audit:    audit,
		metrics:  m,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validation.Struct(req, "Invalid input"); err != nil {
		s.metrics.IncrementLogin("invalid")
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Info().Msg("login failed: unknown email")
			s.metrics.IncrementLogin("invalid")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.metrics.IncrementLogin("error")
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Info().Str("user_id", user.ID.String()).Msg("login failed: incorrect password")
		s.metrics.IncrementLogin("invalid")
		if s.audit != nil {
			s.audit.Record(ctx, user.ID, user.Region, "Failed login", models.AuditFailure, "incorrect password")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.metrics.IncrementLogin("error")
		return nil, apperrors.Internal(err)
	}

	s.metrics.IncrementLogin("success")
	return &LoginResult{AccessToken: token, Role: user.Role, Region: user.Region}, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	p, err := s.tokens.Parse(token)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.Principal{}, apperrors.ErrInvalidToken
	}

	if _, err := s.userRepo.GetByID(ctx, p.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Principal{}, apperrors.ErrInvalidToken
		}
		return models.Principal{}, apperrors.Internal(err)
	}
	return p, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
