// Package engine turns raw statement rows into a validated ledger and a
// monthly summary. The pipeline is pure and synchronous: classification,
// ledger building, and summarization share no mutable state across
// invocations, so one Engine may process documents from any number of
// goroutines concurrently.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/iho/gostatement/internal/domain"
)

// Result is the fully materialized output for one statement.
type Result struct {
	Ledger  domain.Ledger  `json:"ledger"`
	Summary domain.Summary `json:"summary"`
}

// Engine runs the normalization and summarization pipeline.
type Engine struct {
	classifier *Classifier
	summarizer *Summarizer
	logger     zerolog.Logger
}

// New creates an engine with the given policy.
func New(cfg Config, logger zerolog.Logger) *Engine {
	cfg = cfg.withDefaults()
	norm := NewNormalizer(cfg.DayFirst, cfg.AsOf, cfg.MaxDateAgeYears)
	return &Engine{
		classifier: NewClassifier(norm, cfg.Layouts, cfg.CategoryRules),
		summarizer: NewSummarizer(cfg.TopN),
		logger:     logger,
	}
}

// Process classifies every row, builds the ledger, and summarizes it.
// A malformed row never aborts the run; it lands in Ledger.Rejected and
// processing continues. The only hard failure is an empty input
// sequence.
func (e *Engine) Process(rows []domain.RawRow) (*Result, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyInput
	}

	outcomes := make([]RowOutcome, 0, len(rows))
	for _, row := range rows {
		tx, rejected := e.classifier.Classify(row)
		outcomes = append(outcomes, RowOutcome{Row: row, Tx: tx, Rejected: rejected})
	}

	ledger := BuildLedger(outcomes)
	summary := e.summarizer.Build(ledger)

	e.logger.Debug().
		Int("rows", len(rows)).
		Int("transactions", len(ledger.Transactions)).
		Int("rejected", len(ledger.Rejected)).
		Bool("balance_consistent", ledger.BalanceConsistent).
		Msg("statement processed")

	return &Result{Ledger: ledger, Summary: summary}, nil
}
