package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/infrastructure/metrics"
)

// ResultStore implements usecase.ResultStore on Redis. Stored results
// expire after their TTL; an expired or unknown ID reads as
// domain.ErrResultNotFound.
type ResultStore struct {
	client  *redis.Client
	prefix  string
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewResultStore creates a new ResultStore.
func NewResultStore(client *redis.Client, retrier *Retrier, m *metrics.Metrics) *ResultStore {
	return &ResultStore{
		client:  client,
		prefix:  "result:",
		retrier: retrier,
		metrics: m,
	}
}

// Save stores a serialized result under its ID with the given TTL.
func (s *ResultStore) Save(ctx context.Context, id string, result []byte, ttl time.Duration) error {
	s.metrics.RedisOperations.WithLabelValues("set").Inc()

	err := s.retrier.Retry(ctx, func() error {
		return s.client.Set(ctx, s.prefix+id, result, ttl).Err()
	})
	if err != nil {
		s.metrics.RedisErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("failed to store result %s: %w", id, err)
	}
	return nil
}

// Get retrieves a serialized result by ID.
func (s *ResultStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.metrics.RedisOperations.WithLabelValues("get").Inc()

	var data []byte
	err := s.retrier.Retry(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.prefix+id).Bytes()
		return err
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrResultNotFound
		}
		s.metrics.RedisErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	return data, nil
}
