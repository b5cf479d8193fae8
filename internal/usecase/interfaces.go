package usecase

import (
	"context"
	"time"
)

// ResultStore persists processed statement results keyed by request ID.
type ResultStore interface {
	Save(ctx context.Context, id string, result []byte, ttl time.Duration) error
	Get(ctx context.Context, id string) ([]byte, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
