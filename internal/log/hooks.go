package log

import (
	"context"

	"github.com/mbgplatform/mbg/internal/tracing"
)

// Hook derives ambient fields from the request context for one record.
type Hook interface {
	Apply(ctx context.Context, msg string) []Field
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, msg string) []Field

// Apply implements Hook. A nil context yields no fields.
func (f HookFunc) Apply(ctx context.Context, msg string) []Field {
	if ctx == nil {
		return nil
	}

	return f(ctx, msg)
}

var hooks = []Hook{HookFunc(traceFields)}

func applyHooks(ctx context.Context, msg string) []Field {
	var fields []Field
	for _, hook := range hooks {
		fields = append(fields, hook.Apply(ctx, msg)...)
	}

	return fields
}

// traceFields attaches trace id and operation name when present.
func traceFields(ctx context.Context, _ string) []Field {
	var fields []Field

	if traceID, ok := tracing.GetTraceID(ctx); ok {
		fields = append(fields, String("trace_id", traceID))
	}

	if name, ok := tracing.GetOperationName(ctx); ok {
		fields = append(fields, String("operation_name", name))
	}

	return fields
}
