package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// IsPasswordPolicyError reports whether err was caused by a password that
// does not meet the configured rules.
func IsPasswordPolicyError(err error) bool {
	for _, target := range []error{
		ErrPasswordEmpty, ErrPasswordTooShort, ErrPasswordTooLong,
		ErrPasswordNoUppercase, ErrPasswordNoLowercase, ErrPasswordNoNumber, ErrPasswordNoSpecial,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo             repositories.UserRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	auditService         AuditServiceInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	metrics              MetricsRecorderInterface
	maxFailedAttempts    int
	logger               *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	auditService AuditServiceInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	securityConfig *config.SecurityConfig,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:             userRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		auditService:         auditService,
		passwordService:      passwordService,
		tokenService:         tokenService,
		metrics:              metrics,
		maxFailedAttempts:    securityConfig.MaxFailedAttempts,
		logger:               logger,
	}
}

// Register creates a new user and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.audit(ctx, nil, models.AuditActionRegister, ipAddress, userAgent, models.JSONBMap{
			"email":  req.Email,
			"reason": "email_already_exists",
		})
		s.recordEvent("register_failed")
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	response, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &user.ID, models.AuditActionRegister, ipAddress, userAgent, nil)
	s.recordEvent("register")

	return response, nil
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.auditFailedLogin(ctx, nil, req.Email, ipAddress, userAgent, "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsLocked() {
		s.auditFailedLogin(ctx, &user.ID, req.Email, ipAddress, userAgent, "account_locked")
		return nil, ErrAccountLocked
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		user.IncrementFailedAttempts(s.maxFailedAttempts)
		if err := s.userRepo.UpdateFailedLoginAttempts(ctx, user); err != nil {
			// Never reveal user existence via error messages
			s.logger.ErrorContext(ctx, "failed to update login attempts",
				"error", err,
				"user_id", user.ID)
		}

		if user.IsLocked() {
			s.audit(ctx, &user.ID, models.AuditActionAccountLocked, ipAddress, userAgent, nil)
			s.recordEvent("account_locked")
		}

		s.auditFailedLogin(ctx, &user.ID, req.Email, ipAddress, userAgent, "invalid_password")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to record last login",
			"error", err,
			"user_id", user.ID)
	}
	user.ResetFailedAttempts()
	user.LastLoginAt = &now

	response, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &user.ID, models.AuditActionLogin, ipAddress, userAgent, nil)
	s.recordEvent("login")

	return response, nil
}

// Me returns the authenticated user's record
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Logout revokes the access token by blacklisting its jti until it expires.
// Tokens that no longer validate need no revocation and are ignored.
func (s *AuthService) Logout(ctx context.Context, accessToken, ipAddress, userAgent string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		s.logger.DebugContext(ctx, "logout with unusable token", "error", err)
		return nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}

	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	token := &models.BlacklistedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := s.blacklistedTokenRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.audit(ctx, &userID, models.AuditActionLogout, ipAddress, userAgent, nil)
	s.recordEvent("logout")

	return nil
}

func (s *AuthService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     accessToken,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserProfileResponse(user),
	}, nil
}

func (s *AuthService) auditFailedLogin(ctx context.Context, userID *uuid.UUID, email, ipAddress, userAgent, reason string) {
	s.audit(ctx, userID, models.AuditActionFailedLogin, ipAddress, userAgent, models.JSONBMap{
		"email":  email,
		"reason": reason,
	})
	s.recordEvent("login_failed")
}

func (s *AuthService) audit(ctx context.Context, userID *uuid.UUID, action, ipAddress, userAgent string, metadata models.JSONBMap) {
	if err := s.auditService.LogSecurityEvent(ctx, userID, action, ipAddress, userAgent, metadata); err != nil {
		// Audit failures never block authentication
		s.logger.ErrorContext(ctx, "failed to create audit log",
			"error", err,
			"action", action)
	}
}

func (s *AuthService) recordEvent(eventType string) {
	s.metrics.IncrementCounter(MetricAuthenticationEvent, map[string]string{"event_type": eventType})
}
