package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gostatement/internal/adapter/http/dto"
	"github.com/iho/gostatement/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	Process(ctx context.Context, input usecase.ProcessStatementInput) (*usecase.StatementResult, error)
	GetResult(ctx context.Context, id string) (*usecase.StatementResult, error)
}

// StatementHandler handles statement-related HTTP requests.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Create processes a statement and returns the stored result.
func (h *StatementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.statementUC.Process(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process statement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatementFromResult(result))
}

// Get retrieves a previously processed statement by ID.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	result, err := h.statementUC.GetResult(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get statement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromResult(result))
}
