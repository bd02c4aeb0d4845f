package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/scopes"
)

// PrincipalType defines authorization principal types.
type PrincipalType int

const (
	// PrincipalTypeUnknown unknown principal type.
	PrincipalTypeUnknown PrincipalType = iota
	// PrincipalTypeSystem system principal (startup seeding, internal operations).
	PrincipalTypeSystem
	// PrincipalTypeUser user principal.
	PrincipalTypeUser
	// PrincipalTypeTest test principal (only for test environment).
	PrincipalTypeTest
)

// String returns string representation of PrincipalType.
func (p PrincipalType) String() string {
	switch p {
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		return "user"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// Principal represents the authorization principal of one request.
// Each request can only have one Principal, guaranteed by WithPrincipal's
// set-once semantics.
type Principal struct {
	Type   PrincipalType
	UserID *uuid.UUID
	Role   scopes.Role
}

// IsSystem checks if it is a system principal.
func (p Principal) IsSystem() bool {
	return p.Type == PrincipalTypeSystem
}

// IsUser checks if it is a user principal.
func (p Principal) IsUser() bool {
	return p.Type == PrincipalTypeUser
}

// IsTest checks if it is a test principal.
func (p Principal) IsTest() bool {
	return p.Type == PrincipalTypeTest
}

// String returns string representation of Principal (for audit logs).
func (p Principal) String() string {
	switch p.Type {
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		if p.UserID != nil {
			return fmt.Sprintf("user:%s", p.UserID)
		}

		return "user:unknown"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// principalKey is an unexported key type to prevent external forgery.
type principalKey struct{}

// WithPrincipal sets the Principal, returns error if a different one exists.
// Ensures each context can only set a Principal once, preventing principal
// mixing across middleware layers.
func WithPrincipal(ctx context.Context, p Principal) (context.Context, error) {
	if existing, ok := GetPrincipal(ctx); ok {
		if !principalEqual(existing, p) {
			return ctx, fmt.Errorf("authz: principal conflict: existing=%s, new=%s", existing.String(), p.String())
		}

		return ctx, nil // Same principal, idempotent
	}

	return context.WithValue(ctx, principalKey{}, p), nil
}

func principalEqual(a, b Principal) bool {
	if a.Type != b.Type || a.Role != b.Role {
		return false
	}

	switch {
	case a.UserID == nil && b.UserID == nil:
		return true
	case a.UserID == nil || b.UserID == nil:
		return false
	default:
		return *a.UserID == *b.UserID
	}
}

// GetPrincipal reads the Principal.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustGetPrincipal reads the Principal, panics if absent (used in chains
// where the principal is confirmed).
func MustGetPrincipal(ctx context.Context) Principal {
	p, ok := GetPrincipal(ctx)
	if !ok {
		panic("authz: no principal in context")
	}

	return p
}

// NewUserContext creates a context with a User principal.
func NewUserContext(ctx context.Context, userID uuid.UUID, role scopes.Role) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{
		Type:   PrincipalTypeUser,
		UserID: &userID,
		Role:   role,
	})
}

// NewTestContext creates a context with a Test principal.
func NewTestContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeTest})
}

// RequirePrincipal checks that a principal exists.
func RequirePrincipal(ctx context.Context) error {
	if _, ok := GetPrincipal(ctx); !ok {
		return fmt.Errorf("authz: no principal in context")
	}

	return nil
}
