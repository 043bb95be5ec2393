// Package ctxkeys holds the context keys shared across packages.
package ctxkeys

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	tokenizerKey contextKey = "tokenizer"
)

// WithRunID stores the counting run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the counting run ID, if any.
func RunID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WithTokenizer stores the tokenizer name.
func WithTokenizer(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, tokenizerKey, name)
}

// Tokenizer returns the tokenizer name, if any.
func Tokenizer(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenizerKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// LogFields returns zap fields for the values present in ctx.
func LogFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id, ok := RunID(ctx); ok {
		fields = append(fields, zap.String("run_id", id))
	}
	if name, ok := Tokenizer(ctx); ok {
		fields = append(fields, zap.String("tokenizer", name))
	}
	return fields
}
