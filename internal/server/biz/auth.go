package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/log"
	"github.com/mbgplatform/mbg/internal/objects"
	"github.com/mbgplatform/mbg/internal/scopes"
	"github.com/mbgplatform/mbg/internal/store"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the JWT payload. The tenant identity travels in the token
// so every request can rebuild its ambient scope without a session store.
type TokenClaims struct {
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	BranchID       string `json:"branch_id,omitempty"`
	TokenType      string `json:"token_type"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hex.EncodeToString(hashedPassword), nil
}

// VerifyPassword verifies a password against a hash.
func VerifyPassword(hashedPassword, password string) error {
	decodedHashedPassword, err := hex.DecodeString(hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to decode hashed password: %w", err)
	}

	return bcrypt.CompareHashAndPassword(decodedHashedPassword, []byte(password))
}

// GenerateSecretKey generates a random secret key for JWT.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32) // 256 bits

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

type AuthServiceParams struct {
	fx.In

	Store  *store.Store
	Config AuthConfig
	Audit  *AuditService
}

func NewAuthService(params AuthServiceParams) *AuthService {
	cfg := params.Config
	if cfg.SecretKey == "" {
		key, err := GenerateSecretKey()
		if err != nil {
			panic(fmt.Sprintf("auth: generate secret key: %v", err))
		}

		log.Warn(context.Background(), "auth: no secret key configured, generated an ephemeral one; tokens will not survive restarts")

		cfg.SecretKey = key
	}

	return &AuthService{
		AbstractService: &AbstractService{store: params.Store},
		cfg:             cfg,
		audit:           params.Audit,
	}
}

type AuthService struct {
	*AbstractService

	cfg   AuthConfig
	audit *AuditService
}

type RegisterInput struct {
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	BranchID       *uuid.UUID `json:"branch_id,omitempty"`
}

// Register creates a new account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*objects.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, errs.BadRequestFields("email and password are required", map[string]string{
			"email":    "required",
			"password": "required",
		})
	}

	role, err := scopes.ParseRole(in.Role)
	if err != nil {
		return nil, errs.BadRequest(err.Error())
	}

	exists, err := authz.RunWithSystemBypass(ctx, "register-email-check", func(bypassCtx context.Context) (bool, error) {
		return s.store.Users.ExistsByEmail(bypassCtx, email)
	})
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	if exists {
		return nil, errs.Conflict("email already registered")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	user := &store.User{
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		OrganizationID: in.OrganizationID,
		BranchID:       in.BranchID,
		IsActive:       true,
	}

	_, err = authz.RunWithSystemBypass(ctx, "register-create-user", func(bypassCtx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Users.Create(bypassCtx, user)
	})
	if err != nil {
		return nil, storeErr(err, "user", "email already registered")
	}

	s.audit.Record(ctx, Entry{
		Action:       "USER_REGISTER",
		ResourceType: "USER",
		ResourceID:   &user.ID,
		Details:      map[string]any{"email": user.Email, "role": user.Role},
	})

	tokens, err := s.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &objects.AuthResponse{User: toUserInfo(user), Tokens: *tokens}, nil
}

// Login authenticates by email and password. Bad credentials and disabled
// accounts both come back Unauthorized so probing cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*objects.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := authz.RunWithSystemBypass(ctx, "auth-lookup", func(bypassCtx context.Context) (*store.User, error) {
		return s.store.Users.GetByEmail(bypassCtx, email)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.Unauthorized("invalid email or password")
		}

		return nil, errs.Unexpected(err)
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, errs.Unauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, errs.Unauthorized("invalid email or password")
	}

	s.audit.Record(ctx, Entry{
		Action:       "USER_LOGIN",
		ResourceType: "USER",
		ResourceID:   &user.ID,
		ActorID:      &user.ID,
	})

	tokens, err := s.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &objects.AuthResponse{User: toUserInfo(user), Tokens: *tokens}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*objects.TokenPair, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != TokenTypeRefresh {
		return nil, errs.Unauthorized("refresh token required")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	user, err := authz.RunWithSystemBypass(ctx, "refresh-lookup", func(bypassCtx context.Context) (*store.User, error) {
		return s.store.Users.GetByID(bypassCtx, userID)
	})
	if err != nil {
		return nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	if !user.IsActive {
		return nil, errs.Unauthorized("account disabled")
	}

	return s.GenerateTokenPair(ctx, user)
}

// GenerateTokenPair issues matching access and refresh tokens.
func (s *AuthService) GenerateTokenPair(_ context.Context, user *store.User) (*objects.TokenPair, error) {
	access, err := s.signToken(user, TokenTypeAccess, s.cfg.accessTTL())
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	refresh, err := s.signToken(user, TokenTypeRefresh, s.cfg.refreshTTL())
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	return &objects.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.accessTTL().Seconds()),
	}, nil
}

func (s *AuthService) signToken(user *store.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID:    user.ID.String(),
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	if user.OrganizationID != nil {
		claims.OrganizationID = user.OrganizationID.String()
	}

	if user.BranchID != nil {
		claims.BranchID = user.BranchID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.Unauthorized(ErrTokenExpired.Error())
		}

		return nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	if !token.Valid {
		return nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	return claims, nil
}

// ExtractClaim returns a single named claim from a verified token. An absent
// optional claim (no branch, for example) yields ok=false, not an error.
func (s *AuthService) ExtractClaim(tokenString, name string) (string, bool, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return "", false, err
	}

	var value string

	switch name {
	case "user_id":
		value = claims.UserID
	case "role":
		value = claims.Role
	case "organization_id":
		value = claims.OrganizationID
	case "branch_id":
		value = claims.BranchID
	case "token_type":
		value = claims.TokenType
	}

	return value, value != "", nil
}

// AuthenticateToken resolves an access token to its live user record.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (*store.User, *TokenClaims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, nil, err
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, nil, errs.Unauthorized("access token required")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	user, err := authz.RunWithSystemBypass(ctx, "token-user-lookup", func(bypassCtx context.Context) (*store.User, error) {
		return s.store.Users.GetByID(bypassCtx, userID)
	})
	if err != nil {
		return nil, nil, errs.Unauthorized(ErrInvalidJWT.Error())
	}

	if !user.IsActive {
		return nil, nil, errs.Unauthorized("account disabled")
	}

	return user, claims, nil
}

func toUserInfo(user *store.User) objects.UserInfo {
	return objects.UserInfo{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       strings.TrimSpace(user.FirstName + " " + user.LastName),
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		BranchID:       user.BranchID,
		IsActive:       user.IsActive,
	}
}
