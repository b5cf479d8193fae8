package dto

import (
	"time"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// StatementResponse represents a processed statement in API responses.
type StatementResponse struct {
	ID          string         `json:"id"`
	ProcessedAt time.Time      `json:"processed_at"`
	Ledger      domain.Ledger  `json:"ledger"`
	Summary     domain.Summary `json:"summary"`
}

// StatementFromResult converts a use case result to a response.
func StatementFromResult(r *usecase.StatementResult) *StatementResponse {
	return &StatementResponse{
		ID:          r.ID,
		ProcessedAt: r.ProcessedAt,
		Ledger:      r.Ledger,
		Summary:     r.Summary,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
