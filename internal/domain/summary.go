package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is the reserved breakdown key for transactions
// no keyword rule matched.
const CategoryUncategorized = "uncategorized"

// MonthKey identifies a calendar month for grouping.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the MonthKey a date falls into.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before reports whether k is chronologically earlier than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Period is the closed date range a summary covers.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BalanceReview describes how the stated running balance moved within a
// month. Present only when at least one transaction states a balance.
type BalanceReview struct {
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
	Change  decimal.Decimal `json:"change"`
	Peak    decimal.Decimal `json:"peak"`
	Lowest  decimal.Decimal `json:"lowest"`
}

// MonthlySummary aggregates one calendar month of transactions.
type MonthlySummary struct {
	Month            MonthKey                   `json:"month"`
	TransactionCount int                        `json:"transaction_count"`
	TotalCredits     decimal.Decimal            `json:"total_credits"`
	TotalDebits      decimal.Decimal            `json:"total_debits"`
	Net              decimal.Decimal            `json:"net"`
	HighestCredit    decimal.NullDecimal        `json:"highest_credit"`
	HighestDebit     decimal.NullDecimal        `json:"highest_debit"`
	TopTransactions  []Transaction              `json:"top_transactions"`
	Categories       map[string]decimal.Decimal `json:"categories"`
	Balance          *BalanceReview             `json:"balance,omitempty"`
}

// MonthComparison describes one month against its predecessor.
type MonthComparison struct {
	Month               MonthKey        `json:"month"`
	ComparedTo          MonthKey        `json:"compared_to"`
	CreditChangePercent decimal.Decimal `json:"credit_change_percent"`
	DebitChangePercent  decimal.Decimal `json:"debit_change_percent"`
	CountChangePercent  decimal.Decimal `json:"count_change_percent"`
	NetChange           decimal.Decimal `json:"net_change"`
}

// Trend labels for a metric over the whole analysis period.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Comparison is the month-over-month analysis across a summary.
// Empty when the ledger covers fewer than two months.
type Comparison struct {
	Months      []MonthComparison `json:"months,omitempty"`
	CreditTrend string            `json:"credit_trend,omitempty"`
	DebitTrend  string            `json:"debit_trend,omitempty"`
}

// Summary is the full aggregation produced for one statement. Period is
// nil when the ledger holds no transactions.
type Summary struct {
	TransactionCount int                        `json:"transaction_count"`
	TotalCredits     decimal.Decimal            `json:"total_credits"`
	TotalDebits      decimal.Decimal            `json:"total_debits"`
	Net              decimal.Decimal            `json:"net"`
	Period           *Period                    `json:"period,omitempty"`
	Months           []MonthlySummary           `json:"months"`
	TopTransactions  []Transaction              `json:"top_transactions"`
	Categories       map[string]decimal.Decimal `json:"categories"`
	Comparison       Comparison                 `json:"comparison"`
}
