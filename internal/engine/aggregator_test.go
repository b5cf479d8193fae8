package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gostatement/internal/domain"
)

func TestGroupByMonth_Partition(t *testing.T) {
	ledger := BuildLedger(outcomes(
		testTx(1, 5, "January one", "10.00", "", ""),
		testTx(2, 20, "January two", "", "20.00", ""),
		testTx(3, 25, "January three", "30.00", "", ""),
	))
	feb := testTx(4, 2, "February", "40.00", "", "")
	feb.Date = time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	ledger.Transactions = append(ledger.Transactions, feb)

	groups := GroupByMonth(ledger)

	require.Len(t, groups, 2)
	assert.Len(t, groups[domain.MonthKey{Year: 2024, Month: time.January}], 3)
	assert.Len(t, groups[domain.MonthKey{Year: 2024, Month: time.February}], 1)

	// Union of the groups is exactly the ledger: no loss, no duplication.
	total := 0
	for _, txs := range groups {
		total += len(txs)
	}
	assert.Equal(t, len(ledger.Transactions), total)
}

func TestGroupByMonth_OrderWithinGroup(t *testing.T) {
	ledger := BuildLedger(outcomes(
		testTx(1, 20, "first in ledger", "10.00", "", ""),
		testTx(2, 5, "second in ledger", "20.00", "", ""),
	))

	groups := GroupByMonth(ledger)
	jan := groups[domain.MonthKey{Year: 2024, Month: time.January}]

	require.Len(t, jan, 2)
	assert.Equal(t, "first in ledger", jan[0].Description, "group preserves ledger order, not date order")
}

func TestSortedMonths(t *testing.T) {
	groups := map[domain.MonthKey][]domain.Transaction{
		{Year: 2024, Month: time.March}:    nil,
		{Year: 2023, Month: time.December}: nil,
		{Year: 2024, Month: time.January}:  nil,
	}

	keys := SortedMonths(groups)

	require.Len(t, keys, 3)
	assert.Equal(t, "2023-12", keys[0].String())
	assert.Equal(t, "2024-01", keys[1].String())
	assert.Equal(t, "2024-03", keys[2].String())
}
