package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/engine"
	"github.com/iho/gostatement/internal/infrastructure/metrics"
)

// StatementUseCase handles statement processing business logic.
type StatementUseCase struct {
	engine  *engine.Engine
	store   ResultStore
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
	ttl     time.Duration
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	eng *engine.Engine,
	store ResultStore,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
	ttl time.Duration,
) *StatementUseCase {
	return &StatementUseCase{
		engine:  eng,
		store:   store,
		idGen:   idGen,
		metrics: m,
		logger:  logger,
		ttl:     ttl,
	}
}

// ProcessStatementInput represents input for processing a statement.
// RequestID is optional; when set, a repeated request returns the stored
// result of the first run instead of reprocessing.
type ProcessStatementInput struct {
	RequestID string
	Rows      []domain.RawRow
}

// StatementResult is the stored outcome of one processed statement.
type StatementResult struct {
	ID          string         `json:"id"`
	ProcessedAt time.Time      `json:"processed_at"`
	Ledger      domain.Ledger  `json:"ledger"`
	Summary     domain.Summary `json:"summary"`
}

// Process runs the engine over the input rows and persists the result.
// Processing succeeds even when the result store is unavailable; the
// result is then returned but not retrievable later.
func (uc *StatementUseCase) Process(ctx context.Context, input ProcessStatementInput) (*StatementResult, error) {
	if input.RequestID != "" {
		cached, err := uc.lookupCached(ctx, input.RequestID)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	start := time.Now()
	res, err := uc.engine.Process(input.Rows)
	if err != nil {
		uc.metrics.StatementsFailed.Inc()
		return nil, err
	}
	uc.recordProcessed(res, time.Since(start), len(input.Rows))

	id := input.RequestID
	if id == "" {
		id = uc.idGen.Generate()
	}

	result := &StatementResult{
		ID:          id,
		ProcessedAt: time.Now().UTC(),
		Ledger:      res.Ledger,
		Summary:     res.Summary,
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, id, payload, uc.ttl); err != nil {
		uc.logger.Warn().Err(err).Str("id", id).Msg("failed to store statement result")
	}

	return result, nil
}

// GetResult retrieves a previously stored result by ID. Returns
// domain.ErrResultNotFound when the ID is unknown or expired.
func (uc *StatementUseCase) GetResult(ctx context.Context, id string) (*StatementResult, error) {
	data, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var result StatementResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *StatementUseCase) lookupCached(ctx context.Context, id string) (*StatementResult, error) {
	data, err := uc.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			uc.metrics.CacheMisses.Inc()
			return nil, nil
		}
		return nil, err
	}

	uc.metrics.CacheHits.Inc()
	uc.logger.Debug().Str("id", id).Msg("returning stored result for repeated request")

	var result StatementResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *StatementUseCase) recordProcessed(res *engine.Result, elapsed time.Duration, rows int) {
	uc.metrics.StatementsProcessed.Inc()
	uc.metrics.ProcessingDuration.Observe(elapsed.Seconds())
	uc.metrics.StatementRows.Observe(float64(rows))
	uc.metrics.TransactionsExtracted.Add(float64(len(res.Ledger.Transactions)))
	for _, rej := range res.Ledger.Rejected {
		uc.metrics.RowsRejected.WithLabelValues(string(rej.Reason)).Inc()
		if rej.Reason == domain.ReasonDuplicateRow {
			uc.metrics.DuplicatesDropped.Inc()
		}
	}
	uc.metrics.BalanceMismatches.Add(float64(len(res.Ledger.Warnings)))
}
