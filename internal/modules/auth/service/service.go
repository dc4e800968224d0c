package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"anoa.com/langanalytics/internal/modules/auth/dto"
	"anoa.com/langanalytics/internal/modules/auth/repository"
	"anoa.com/langanalytics/pkg/apperror"
	"anoa.com/langanalytics/pkg/sanitize"
	"anoa.com/langanalytics/pkg/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	repo     repository.SuperAdminRepository
	tokens   *token.JWTService
	throttle LoginThrottle
	log      *zap.Logger
}

func NewAuthService(repo repository.SuperAdminRepository, tokens *token.JWTService, throttle LoginThrottle, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		log:      log,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := sanitize.Email(req.Email)

	allowed, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		// fail open when redis is unreachable
		s.log.Warn("login throttle unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "too many login attempts", apperror.ErrRateLimitExceeded)
	}

	sa, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordFailure(ctx, email)
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find super admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sa.Password), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, email)
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	accessToken, _, err := s.tokens.Generate(sa.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn("failed to reset login throttle", zap.Error(err))
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *authService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn("failed to record login failure", zap.Error(err))
	}
}
