package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gostatement/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(DefaultConfig(), zerolog.Nop())
}

func TestEngine_ProcessStatement(t *testing.T) {
	eng := newTestEngine(t)

	rows := []domain.RawRow{
		{Cells: []string{"01/01/2024", "Opening balance", "", "", "1000.00"}, Ref: domain.SourceRef{Page: 1, Line: 1}},
		{Cells: []string{"02/01/2024", "Salary payment", "", "2000.00", "3000.00"}, Ref: domain.SourceRef{Page: 1, Line: 2}},
		{Cells: []string{"03/01/2024", "Rent", "500.00", "", "2500.00"}, Ref: domain.SourceRef{Page: 1, Line: 3}},
	}

	result, err := eng.Process(rows)
	require.NoError(t, err)

	require.Len(t, result.Ledger.Transactions, 2)
	require.Len(t, result.Ledger.Rejected, 1)
	assert.Equal(t, domain.ReasonUnrecognizedFormat, result.Ledger.Rejected[0].Reason,
		"header-like row with no movement amount is rejected, not misread")

	// The opening balance row carries no movement, so the chain starts at
	// the salary row and reconciles through the rent row.
	assert.True(t, result.Ledger.BalanceConsistent)
	assert.Empty(t, result.Ledger.Warnings)

	summary := result.Summary
	assert.Equal(t, 2, summary.TransactionCount)
	assert.True(t, summary.TotalCredits.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, summary.TotalDebits.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, summary.Net.Equal(decimal.RequireFromString("1500.00")))

	require.Len(t, summary.Months, 1)
	assert.Equal(t, "2024-01", summary.Months[0].Month.String())
}

func TestEngine_ProcessEmptyInput(t *testing.T) {
	eng := newTestEngine(t)

	result, err := eng.Process(nil)

	require.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Nil(t, result)
}

func TestEngine_RejectionsDoNotAbort(t *testing.T) {
	eng := newTestEngine(t)

	rows := []domain.RawRow{
		{Cells: []string{"31/02/2024", "Impossible date", "10.00", "", ""}, Ref: domain.SourceRef{Page: 1, Line: 1}},
		{Cells: []string{"05/01/2024", "Groceries", "42.50", "", ""}, Ref: domain.SourceRef{Page: 1, Line: 2}},
		{Cells: []string{"06/01/2024", "Refund", "", "not-a-number", ""}, Ref: domain.SourceRef{Page: 1, Line: 3}},
	}

	result, err := eng.Process(rows)
	require.NoError(t, err)

	require.Len(t, result.Ledger.Transactions, 1)
	assert.Equal(t, "Groceries", result.Ledger.Transactions[0].Description)
	require.Len(t, result.Ledger.Rejected, 2)
	assert.Equal(t, domain.ReasonUnparseableDate, result.Ledger.Rejected[0].Reason)
	assert.Equal(t, domain.ReasonUnparseableAmount, result.Ledger.Rejected[1].Reason)
}

func TestEngine_ConcurrentProcessing(t *testing.T) {
	eng := newTestEngine(t)

	rows := []domain.RawRow{
		{Cells: []string{"02/01/2024", "Salary", "", "2000.00", ""}, Ref: domain.SourceRef{Page: 1, Line: 1}},
	}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := eng.Process(rows)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
