// Package contexts carries the ambient request scope: the tenant identity
// derived from the caller's token, the resolved user, and tracing metadata.
// Values are scoped to a single request's context chain; nothing here is
// process-global.
package contexts

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbgplatform/mbg/internal/store"
)

// ContextKey defines the context key type.
type ContextKey string

const (
	// containerContextKey is used to store the context container in the context.
	containerContextKey ContextKey = "context_container"
)

// WithOrganizationID stores the ambient organization id in the context.
func WithOrganizationID(ctx context.Context, orgID uuid.UUID) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.OrganizationID = &orgID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetOrganizationID retrieves the ambient organization id from the context.
func GetOrganizationID(ctx context.Context) (uuid.UUID, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.OrganizationID != nil {
		return *container.OrganizationID, true
	}

	return uuid.Nil, false
}

// WithBranchID stores the ambient branch id in the context.
func WithBranchID(ctx context.Context, branchID uuid.UUID) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.BranchID = &branchID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetBranchID retrieves the ambient branch id from the context.
func GetBranchID(ctx context.Context) (uuid.UUID, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.BranchID != nil {
		return *container.BranchID, true
	}

	return uuid.Nil, false
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *store.User) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.User = user
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*store.User, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	return container.User, container.User != nil
}

// WithTraceID stores the trace id in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.TraceID = &traceID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetTraceID retrieves the trace id from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.TraceID != nil {
		return *container.TraceID, true
	}

	return "", false
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.RequestID = &requestID
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.RequestID != nil {
		return *container.RequestID, true
	}

	return "", false
}

// WithOperationName stores the operation name in the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.OperationName = &name
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetOperationName retrieves the operation name from the context.
func GetOperationName(ctx context.Context) (string, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.OperationName != nil {
		return *container.OperationName, true
	}

	return "", false
}

// WithClientInfo stores the caller's network metadata for audit capture.
func WithClientInfo(ctx context.Context, clientIP, userAgent string) context.Context {
	container := getContainer(ctx)

	container.mu.Lock()
	container.ClientIP = &clientIP
	container.UserAgent = &userAgent
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetClientIP retrieves the caller's ip address from the context.
func GetClientIP(ctx context.Context) (string, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.ClientIP != nil {
		return *container.ClientIP, true
	}

	return "", false
}

// GetUserAgent retrieves the caller's user agent from the context.
func GetUserAgent(ctx context.Context) (string, bool) {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	if container.UserAgent != nil {
		return *container.UserAgent, true
	}

	return "", false
}

// AddError collects an error on the request container for access logging.
func AddError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	container := getContainer(ctx)

	container.mu.Lock()
	container.Errors = append(container.Errors, err)
	container.mu.Unlock()
}

// GetErrors returns the errors collected during the request.
func GetErrors(ctx context.Context) []error {
	container := getContainer(ctx)

	container.mu.RLock()
	defer container.mu.RUnlock()

	out := make([]error, len(container.Errors))
	copy(out, container.Errors)

	return out
}
