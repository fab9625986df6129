package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
	UserRoleGuest UserRole = "guest"
)

type UserProfile struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RoleResponse struct {
	Role    UserRole `json:"role"`
	IsAdmin bool     `json:"is_admin"`
}

// for login
type LoginRequest struct {
	Principal string `json:"principal" validate:"required,min=5,max=100"`
}

// for login response
type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

// JWT claims structure. The token id (jti) is what logout revokes.
type Claims struct {
	Principal string `json:"principal"`
	jwt.RegisteredClaims
}
