package authz

import (
	"context"
	"fmt"

	"github.com/mbgplatform/mbg/internal/log"
)

// NewSystemContext creates a context with a System principal (startup
// seeding, background work).
func NewSystemContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeSystem})
}

// RunWithSystemBypass executes fn with a System principal, bypassing
// permission checks for the duration of the closure only. reason must be a
// stable audit identifier (e.g. "auth-lookup", "seed"); every bypass is
// logged so privileged internal reads stay traceable.
func RunWithSystemBypass[T any](ctx context.Context, reason string, fn func(ctx context.Context) (T, error)) (T, error) {
	log.Debug(ctx, "authz: system bypass",
		log.String("reason", reason),
	)

	return fn(NewSystemContext(ctx))
}

// RequireSystemPrincipal checks that the current principal is System.
// Used to protect sensitive internal operations.
func RequireSystemPrincipal(ctx context.Context) error {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return fmt.Errorf("authz: no principal in context")
	}

	if !p.IsSystem() {
		return fmt.Errorf("authz: operation requires system principal, got %s", p.String())
	}

	return nil
}
