package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gostatement/internal/domain"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(newTestNormalizer(true), DefaultLayouts(), DefaultCategoryRules())
}

func tableRow(line int, cells ...string) domain.RawRow {
	return domain.RawRow{Cells: cells, Ref: domain.SourceRef{Page: 1, Line: line}}
}

func TestClassify_GenericTableRow(t *testing.T) {
	c := newTestClassifier(t)

	tx, rejected := c.Classify(tableRow(3, "02/01/2024", "Salary  payment", "", "2,000.00", "3,000.00"))
	require.Nil(t, rejected)
	require.NotNil(t, tx)

	assert.Equal(t, "Salary payment", tx.Description, "whitespace collapsed")
	assert.True(t, tx.Credit.Equal(decimal.NewFromInt(2000)))
	assert.True(t, tx.Debit.IsZero())
	require.True(t, tx.Balance.Valid)
	assert.True(t, tx.Balance.Decimal.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "salary", tx.Category)
	assert.Equal(t, domain.SourceRef{Page: 1, Line: 3}, tx.Ref)
}

func TestClassify_MobileMoneyRow(t *testing.T) {
	c := newTestClassifier(t)

	tx, rejected := c.Classify(tableRow(7,
		"QAB12CD345", "12/01/2024 10:33:05", "Airtime purchase", "COMPLETED", "", "-100.00", "1,150.00"))
	require.Nil(t, rejected)
	require.NotNil(t, tx)

	assert.True(t, tx.Debit.Equal(decimal.NewFromInt(100)), "negative debit column stored as positive debit")
	assert.True(t, tx.Credit.IsZero())
	assert.Equal(t, "airtime", tx.Category)
	assert.Equal(t, 12, tx.Date.Day())
}

func TestClassify_TextLine(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name    string
		line    string
		debit   string
		credit  string
		balance string
	}{
		{
			name:    "negative amount is a debit",
			line:    "03/01/2024 Rent to landlord -500.00 2,500.00",
			debit:   "500.00",
			balance: "2500.00",
		},
		{
			name:    "positive amount defaults to credit",
			line:    "02/01/2024 Salary 2000.00 3000.00",
			credit:  "2000.00",
			balance: "3000.00",
		},
		{
			name:  "description keyword forces debit",
			line:  "04/01/2024 ATM withdrawal 200.00",
			debit: "200.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, rejected := c.Classify(domain.RawRow{Line: tt.line, Ref: domain.SourceRef{Page: 2, Line: 1}})
			require.Nil(t, rejected)
			require.NotNil(t, tx)

			if tt.debit != "" {
				assert.True(t, tx.Debit.Equal(decimal.RequireFromString(tt.debit)), "debit=%s", tx.Debit)
			}
			if tt.credit != "" {
				assert.True(t, tx.Credit.Equal(decimal.RequireFromString(tt.credit)), "credit=%s", tx.Credit)
			}
			if tt.balance != "" {
				require.True(t, tx.Balance.Valid)
				assert.True(t, tx.Balance.Decimal.Equal(decimal.RequireFromString(tt.balance)))
			}
		})
	}
}

func TestClassify_TableFallsBackToLine(t *testing.T) {
	c := newTestClassifier(t)

	// Two cells only: no layout matches, but joined they form a valid line.
	tx, rejected := c.Classify(tableRow(5, "03/01/2024 Rent", "-500.00"))
	require.Nil(t, rejected)
	require.NotNil(t, tx)
	assert.True(t, tx.Debit.Equal(decimal.NewFromInt(500)))
}

func TestClassify_Rejections(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("no debit or credit", func(t *testing.T) {
		tx, rejected := c.Classify(tableRow(1, "01/01/2024", "Opening balance", "", "", "1000.00"))
		assert.Nil(t, tx)
		require.NotNil(t, rejected)
		assert.Equal(t, domain.ReasonUnrecognizedFormat, rejected.Reason)
	})

	t.Run("both debit and credit", func(t *testing.T) {
		tx, rejected := c.Classify(tableRow(2, "01/01/2024", "Odd row", "100.00", "200.00", "900.00"))
		assert.Nil(t, tx)
		require.NotNil(t, rejected)
		assert.Equal(t, domain.ReasonAmbiguousClassification, rejected.Reason)
	})

	t.Run("amount cell does not parse", func(t *testing.T) {
		tx, rejected := c.Classify(tableRow(3, "01/01/2024", "Smudged scan", "N/A", "", "900.00"))
		assert.Nil(t, tx)
		require.NotNil(t, rejected)
		assert.Equal(t, domain.ReasonUnparseableAmount, rejected.Reason)
	})

	t.Run("date out of plausible range", func(t *testing.T) {
		tx, rejected := c.Classify(tableRow(4, "01/01/2030", "Future dated", "10.00", "", ""))
		assert.Nil(t, tx)
		require.NotNil(t, rejected)
		assert.Equal(t, domain.ReasonDateOutOfRange, rejected.Reason)
	})

	t.Run("free text", func(t *testing.T) {
		tx, rejected := c.Classify(domain.RawRow{Line: "Statement period: January 2024"})
		assert.Nil(t, tx)
		require.NotNil(t, rejected)
		assert.Equal(t, domain.ReasonUnrecognizedFormat, rejected.Reason)
	})

	t.Run("rejection keeps the original row", func(t *testing.T) {
		row := domain.RawRow{Line: "TOTAL 12,345.00", Ref: domain.SourceRef{Page: 3, Line: 40}}
		_, rejected := c.Classify(row)
		require.NotNil(t, rejected)
		assert.Equal(t, row, rejected.Row)
	})
}

func TestClassify_CategoryRulesAreOrdered(t *testing.T) {
	rules := []CategoryRule{
		{Keyword: "transfer", Label: "transfer"},
		{Keyword: "mobile", Label: "mobile"},
	}
	c := NewClassifier(newTestNormalizer(true), DefaultLayouts(), rules)

	// Description matches both rules; the first wins.
	tx, rejected := c.Classify(tableRow(1, "02/01/2024", "Mobile transfer out", "150.00", "", "850.00"))
	require.Nil(t, rejected)
	assert.Equal(t, "transfer", tx.Category)

	tx, rejected = c.Classify(tableRow(2, "02/01/2024", "Card payment", "150.00", "", "700.00"))
	require.Nil(t, rejected)
	assert.Empty(t, tx.Category, "no rule matched")
}
