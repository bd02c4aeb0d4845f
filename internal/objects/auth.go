package objects

import (
	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
)

// UserInfo is the public projection of a user account.
type UserInfo struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Role           scopes.Role `json:"role"`
	OrganizationID *uuid.UUID  `json:"organization_id,omitempty"`
	BranchID       *uuid.UUID  `json:"branch_id,omitempty"`
	IsActive       bool        `json:"is_active"`
}

// TokenPair is the issued access/refresh token bundle.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User   UserInfo  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}
