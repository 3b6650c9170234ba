package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries identity and scope information inside access tokens.
type JWTClaims struct {
	UserID           string   `json:"user_id"`
	Role             UserRole `json:"role"`
	AssignedCategory string   `json:"assigned_category,omitempty"`
	AssignedDivision string   `json:"assigned_division,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token plus the authenticated profile.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
