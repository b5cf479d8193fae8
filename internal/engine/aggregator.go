package engine

import (
	"sort"

	"github.com/iho/gostatement/internal/domain"
)

// GroupByMonth buckets the ledger's transactions by calendar month.
// Pure: the same ledger always yields the same grouping, and insertion
// order inside each group follows ledger order.
func GroupByMonth(ledger domain.Ledger) map[domain.MonthKey][]domain.Transaction {
	groups := make(map[domain.MonthKey][]domain.Transaction)
	for _, tx := range ledger.Transactions {
		key := tx.Month()
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// SortedMonths returns the group keys in chronological order.
func SortedMonths(groups map[domain.MonthKey][]domain.Transaction) []domain.MonthKey {
	keys := make([]domain.MonthKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
