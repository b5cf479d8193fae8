package dto

import (
	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// SourceRefRequest locates a row in the source document.
type SourceRefRequest struct {
	Page int `json:"page"`
	Line int `json:"line"`
}

// RawRowRequest represents one extracted statement row. Table-shaped
// rows carry cells, text-shaped rows carry line.
type RawRowRequest struct {
	Cells     []string         `json:"cells,omitempty"`
	Line      string           `json:"line,omitempty"`
	SourceRef SourceRefRequest `json:"source_ref"`
}

// ProcessStatementRequest represents a request to process a statement.
// request_id is optional; repeated requests with the same ID return the
// stored result of the first run.
type ProcessStatementRequest struct {
	RequestID string          `json:"request_id,omitempty"`
	Rows      []RawRowRequest `json:"rows"`
}

// ToUseCaseInput converts to use case input.
func (r *ProcessStatementRequest) ToUseCaseInput() usecase.ProcessStatementInput {
	rows := make([]domain.RawRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = domain.RawRow{
			Cells: row.Cells,
			Line:  row.Line,
			Ref: domain.SourceRef{
				Page: row.SourceRef.Page,
				Line: row.SourceRef.Line,
			},
		}
	}
	return usecase.ProcessStatementInput{
		RequestID: r.RequestID,
		Rows:      rows,
	}
}
