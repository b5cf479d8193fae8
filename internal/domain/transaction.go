package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceRef points back to the raw row a record was built from. It is
// diagnostic only and never participates in business rules.
type SourceRef struct {
	Page int `json:"page"`
	Line int `json:"line"`
}

// RawRow is one extracted statement row before type interpretation.
// Table-shaped rows carry Cells, text-shaped rows carry Line.
type RawRow struct {
	Cells []string  `json:"cells,omitempty"`
	Line  string    `json:"line,omitempty"`
	Ref   SourceRef `json:"source_ref"`
}

// IsTabular reports whether the row came from a table extraction.
func (r RawRow) IsTabular() bool {
	return len(r.Cells) > 0
}

// Transaction represents one financial movement on a statement.
// Exactly one of Debit/Credit is positive; the other is zero.
type Transaction struct {
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	Debit       decimal.Decimal     `json:"debit"`
	Credit      decimal.Decimal     `json:"credit"`
	Balance     decimal.NullDecimal `json:"balance"`
	Category    string              `json:"category,omitempty"`
	Ref         SourceRef           `json:"source_ref"`
}

// IsDebit reports whether money left the account.
func (t Transaction) IsDebit() bool {
	return t.Debit.IsPositive()
}

// Amount returns the magnitude of the movement regardless of direction.
func (t Transaction) Amount() decimal.Decimal {
	if t.IsDebit() {
		return t.Debit
	}
	return t.Credit
}

// Month returns the calendar month the transaction falls into.
func (t Transaction) Month() MonthKey {
	return MonthKey{Year: t.Date.Year(), Month: t.Date.Month()}
}

// SameMovement reports whether two transactions carry identical values.
// Used for duplicate detection across page boundaries.
func (t Transaction) SameMovement(o Transaction) bool {
	return t.Date.Equal(o.Date) &&
		t.Description == o.Description &&
		t.Debit.Equal(o.Debit) &&
		t.Credit.Equal(o.Credit) &&
		t.Balance.Valid == o.Balance.Valid &&
		(!t.Balance.Valid || t.Balance.Decimal.Equal(o.Balance.Decimal))
}

// Rejected is a raw row that failed normalization or classification.
type Rejected struct {
	Row    RawRow       `json:"row"`
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail,omitempty"`
}

// BalanceWarning records one failed running-balance check between two
// consecutive transactions that both state a balance.
type BalanceWarning struct {
	PrevRef  SourceRef       `json:"prev_source_ref"`
	Ref      SourceRef       `json:"source_ref"`
	Expected decimal.Decimal `json:"expected"`
	Stated   decimal.Decimal `json:"stated"`
}

// Ledger is the validated, ordered result of classifying one statement.
// It is constructed once and never mutated afterwards.
type Ledger struct {
	Transactions      []Transaction    `json:"transactions"`
	Rejected          []Rejected       `json:"rejected"`
	Warnings          []BalanceWarning `json:"warnings,omitempty"`
	BalanceConsistent bool             `json:"balance_consistent"`
}
