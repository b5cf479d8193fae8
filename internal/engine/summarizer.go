package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Summarizer computes per-month and overall statistics from a ledger.
type Summarizer struct {
	topN int
}

// NewSummarizer creates a summarizer keeping the topN largest movements
// per month and overall.
func NewSummarizer(topN int) *Summarizer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Summarizer{topN: topN}
}

// Build produces the full summary for a ledger. An empty ledger yields a
// summary with zero counts and no analysis period.
func (s *Summarizer) Build(ledger domain.Ledger) domain.Summary {
	summary := domain.Summary{
		TransactionCount: len(ledger.Transactions),
		TotalCredits:     decimal.Zero,
		TotalDebits:      decimal.Zero,
		Net:              decimal.Zero,
		Months:           make([]domain.MonthlySummary, 0),
		TopTransactions:  topTransactions(ledger.Transactions, s.topN),
		Categories:       categoryTotals(ledger.Transactions),
	}

	groups := GroupByMonth(ledger)
	for _, key := range SortedMonths(groups) {
		month := s.monthSummary(key, groups[key])
		summary.Months = append(summary.Months, month)
		summary.TotalCredits = summary.TotalCredits.Add(month.TotalCredits)
		summary.TotalDebits = summary.TotalDebits.Add(month.TotalDebits)
	}
	summary.Net = summary.TotalCredits.Sub(summary.TotalDebits)
	summary.Period = analysisPeriod(ledger.Transactions)
	summary.Comparison = compareMonths(summary.Months)

	return summary
}

func (s *Summarizer) monthSummary(key domain.MonthKey, txs []domain.Transaction) domain.MonthlySummary {
	month := domain.MonthlySummary{
		Month:            key,
		TransactionCount: len(txs),
		TotalCredits:     decimal.Zero,
		TotalDebits:      decimal.Zero,
		TopTransactions:  topTransactions(txs, s.topN),
		Categories:       categoryTotals(txs),
		Balance:          balanceReview(txs),
	}

	for _, tx := range txs {
		if tx.IsDebit() {
			month.TotalDebits = month.TotalDebits.Add(tx.Debit)
			month.HighestDebit = higher(month.HighestDebit, tx.Debit)
		} else {
			month.TotalCredits = month.TotalCredits.Add(tx.Credit)
			month.HighestCredit = higher(month.HighestCredit, tx.Credit)
		}
	}
	month.Net = month.TotalCredits.Sub(month.TotalDebits)

	return month
}

// topTransactions returns the n largest movements by absolute amount.
// Ties go to the earlier date, then to the earlier ledger position.
func topTransactions(txs []domain.Transaction, n int) []domain.Transaction {
	ranked := make([]domain.Transaction, len(txs))
	copy(ranked, txs)

	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := ranked[i].Amount().Cmp(ranked[j].Amount())
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Date.Before(ranked[j].Date)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// categoryTotals sums debit+credit per category label, with transactions
// outside every rule under the reserved uncategorized key.
func categoryTotals(txs []domain.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		label := tx.Category
		if label == "" {
			label = domain.CategoryUncategorized
		}
		totals[label] = totals[label].Add(tx.Amount())
	}
	return totals
}

// balanceReview summarizes the stated running balance over a sequence of
// transactions in ledger order, nil when none states a balance.
func balanceReview(txs []domain.Transaction) *domain.BalanceReview {
	var balances []decimal.Decimal
	for _, tx := range txs {
		if tx.Balance.Valid {
			balances = append(balances, tx.Balance.Decimal)
		}
	}
	if len(balances) == 0 {
		return nil
	}

	review := &domain.BalanceReview{
		Opening: balances[0],
		Closing: balances[len(balances)-1],
		Peak:    balances[0],
		Lowest:  balances[0],
	}
	for _, b := range balances[1:] {
		if b.GreaterThan(review.Peak) {
			review.Peak = b
		}
		if b.LessThan(review.Lowest) {
			review.Lowest = b
		}
	}
	review.Change = review.Closing.Sub(review.Opening)
	return review
}

func analysisPeriod(txs []domain.Transaction) *domain.Period {
	if len(txs) == 0 {
		return nil
	}
	period := &domain.Period{Start: txs[0].Date, End: txs[0].Date}
	for _, tx := range txs[1:] {
		if tx.Date.Before(period.Start) {
			period.Start = tx.Date
		}
		if tx.Date.After(period.End) {
			period.End = tx.Date
		}
	}
	return period
}

// compareMonths builds the month-over-month analysis. It needs at least
// two months; otherwise the comparison is empty.
func compareMonths(months []domain.MonthlySummary) domain.Comparison {
	if len(months) < 2 {
		return domain.Comparison{}
	}

	cmp := domain.Comparison{
		Months: make([]domain.MonthComparison, 0, len(months)-1),
	}
	for i := 1; i < len(months); i++ {
		cur, prev := months[i], months[i-1]
		cmp.Months = append(cmp.Months, domain.MonthComparison{
			Month:               cur.Month,
			ComparedTo:          prev.Month,
			CreditChangePercent: percentChange(prev.TotalCredits, cur.TotalCredits),
			DebitChangePercent:  percentChange(prev.TotalDebits, cur.TotalDebits),
			CountChangePercent: percentChange(
				decimal.NewFromInt(int64(prev.TransactionCount)),
				decimal.NewFromInt(int64(cur.TransactionCount)),
			),
			NetChange: cur.Net.Sub(prev.Net),
		})
	}

	cmp.CreditTrend = trend(months, func(m domain.MonthlySummary) decimal.Decimal { return m.TotalCredits })
	cmp.DebitTrend = trend(months, func(m domain.MonthlySummary) decimal.Decimal { return m.TotalDebits })
	return cmp
}

func higher(cur decimal.NullDecimal, candidate decimal.Decimal) decimal.NullDecimal {
	if !cur.Valid || candidate.GreaterThan(cur.Decimal) {
		return decimal.NullDecimal{Decimal: candidate, Valid: true}
	}
	return cur
}

func percentChange(old, cur decimal.Decimal) decimal.Decimal {
	if old.IsZero() {
		if cur.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return cur.Sub(old).Div(old).Mul(hundred)
}

func trend(months []domain.MonthlySummary, value func(domain.MonthlySummary) decimal.Decimal) string {
	increasing, decreasing := true, true
	for i := 1; i < len(months); i++ {
		prev, cur := value(months[i-1]), value(months[i])
		if cur.LessThanOrEqual(prev) {
			increasing = false
		}
		if cur.GreaterThanOrEqual(prev) {
			decreasing = false
		}
	}
	switch {
	case increasing:
		return domain.TrendIncreasing
	case decreasing:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}
