package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
)

// RowOutcome is the per-row result of classification. Exactly one of Tx
// and Rejected is set; Row is always the originating raw row.
type RowOutcome struct {
	Row      domain.RawRow
	Tx       *domain.Transaction
	Rejected *domain.Rejected
}

// BuildLedger assembles the validated ledger from the ordered sequence
// of classification outcomes for one statement.
//
// Adjacent duplicate transactions (all of date, description, debit,
// credit, and balance equal) are collapsed to the first occurrence; the
// rest are rejected with reason duplicate_row. PDF extraction re-emits
// rows across page boundaries, so only adjacency makes a repeat a
// duplicate; identical movements further apart are legitimate.
//
// Running balances are reconciled between consecutive transactions that
// both state one. A mismatch is advisory: it clears BalanceConsistent
// and records a warning without dropping the transaction.
func BuildLedger(outcomes []RowOutcome) domain.Ledger {
	ledger := domain.Ledger{
		Transactions:      make([]domain.Transaction, 0, len(outcomes)),
		Rejected:          make([]domain.Rejected, 0),
		BalanceConsistent: true,
	}

	// prev is the transaction from the immediately preceding input row,
	// nil when that row was rejected. Duplicates chain: the second of
	// three identical rows is removed but still anchors the third.
	var prev *domain.Transaction
	for _, out := range outcomes {
		if out.Rejected != nil {
			ledger.Rejected = append(ledger.Rejected, *out.Rejected)
			prev = nil
			continue
		}

		tx := out.Tx
		if prev != nil && tx.SameMovement(*prev) {
			ledger.Rejected = append(ledger.Rejected, domain.Rejected{
				Row:    out.Row,
				Reason: domain.ReasonDuplicateRow,
				Detail: fmt.Sprintf("duplicate of row at page %d line %d", prev.Ref.Page, prev.Ref.Line),
			})
			prev = tx
			continue
		}

		ledger.Transactions = append(ledger.Transactions, *tx)
		prev = tx
	}

	reconcileBalances(&ledger)
	return ledger
}

// reconcileBalances walks kept transactions in order and verifies
// balance[i] == balance[i-1] - debit[i] + credit[i] with exact decimal
// equality for every consecutive pair that both state a balance.
func reconcileBalances(ledger *domain.Ledger) {
	var (
		prevBalance decimal.Decimal
		prevRef     domain.SourceRef
		havePrev    bool
	)

	for _, tx := range ledger.Transactions {
		if !tx.Balance.Valid {
			// Statements may omit the running balance for some rows or
			// restart sequences across pages; the chain restarts here.
			havePrev = false
			continue
		}

		if havePrev {
			expected := prevBalance.Sub(tx.Debit).Add(tx.Credit)
			if !expected.Equal(tx.Balance.Decimal) {
				ledger.BalanceConsistent = false
				ledger.Warnings = append(ledger.Warnings, domain.BalanceWarning{
					PrevRef:  prevRef,
					Ref:      tx.Ref,
					Expected: expected,
					Stated:   tx.Balance.Decimal,
				})
			}
		}

		prevBalance = tx.Balance.Decimal
		prevRef = tx.Ref
		havePrev = true
	}
}
