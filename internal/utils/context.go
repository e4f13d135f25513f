package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ContextRunIDKey contextKey = "runID"

// WithRunID tags ctx with the id of the enrichment run it belongs to.
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextRunIDKey, runID)
}

func GetRunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(ContextRunIDKey).(uuid.UUID)
	return runID, ok
}
