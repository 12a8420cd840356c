package dto

import (
	"time"

	"finance-tracker/internal/models"
)

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string              `json:"token"`
	TokenType string              `json:"token_type"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      UserProfileResponse `json:"user"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfileResponse maps a user to its public profile
func NewUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// MessageResponse carries a short confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityResponse is one page of the caller's audit trail
type ActivityResponse struct {
	Items  []*models.AuditLog `json:"items"`
	Total  int64              `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// NewActivityResponse wraps a page of audit rows; a nil page becomes empty
func NewActivityResponse(logs []*models.AuditLog, total int64, offset, limit int) ActivityResponse {
	if logs == nil {
		logs = []*models.AuditLog{}
	}
	return ActivityResponse{
		Items:  logs,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}
