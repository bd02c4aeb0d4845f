package contexts

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/store"
)

// contextContainer contains all ambient values of one request. It lives on
// the request's context.Context only, so its lifetime — and the tenant
// identity it carries — ends with the request on every exit path, and no two
// in-flight requests ever observe each other's container.
type contextContainer struct {
	OrganizationID *uuid.UUID
	BranchID       *uuid.UUID
	User           *store.User
	TraceID        *string
	RequestID      *string
	OperationName  *string
	ClientIP       *string
	UserAgent      *string
	Errors         []error
	mu             sync.RWMutex
}

// getContainer retrieves the existing container from context, or creates a
// new one if it doesn't exist.
func getContainer(ctx context.Context) *contextContainer {
	if container, ok := ctx.Value(containerContextKey).(*contextContainer); ok {
		return container
	}

	return &contextContainer{}
}

// withContainer stores the container in the context (if not already stored).
func withContainer(ctx context.Context, container *contextContainer) context.Context {
	if ctx.Value(containerContextKey) == nil {
		return context.WithValue(ctx, containerContextKey, container)
	}

	return ctx
}
