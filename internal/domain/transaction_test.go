package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionDirection(t *testing.T) {
	debit := Transaction{Debit: decimal.NewFromInt(500)}
	if !debit.IsDebit() {
		t.Fatal("expected debit transaction")
	}
	if !debit.Amount().Equal(decimal.NewFromInt(500)) {
		t.Errorf("Amount() = %s, want 500", debit.Amount())
	}

	credit := Transaction{Credit: decimal.NewFromInt(2000)}
	if credit.IsDebit() {
		t.Fatal("expected credit transaction")
	}
	if !credit.Amount().Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Amount() = %s, want 2000", credit.Amount())
	}
}

func TestTransactionMonth(t *testing.T) {
	tx := Transaction{Date: date(2024, time.March, 31)}
	got := tx.Month()
	want := MonthKey{Year: 2024, Month: time.March}
	if got != want {
		t.Errorf("Month() = %v, want %v", got, want)
	}
}

func TestSameMovement(t *testing.T) {
	base := Transaction{
		Date:        date(2024, time.January, 2),
		Description: "Salary",
		Credit:      decimal.RequireFromString("2000.00"),
		Balance:     decimal.NullDecimal{Decimal: decimal.RequireFromString("3000.00"), Valid: true},
		Ref:         SourceRef{Page: 1, Line: 2},
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   bool
	}{
		{"identical", func(tx *Transaction) {}, true},
		{"different source ref still same movement", func(tx *Transaction) {
			tx.Ref = SourceRef{Page: 2, Line: 1}
		}, true},
		{"equivalent decimal representation", func(tx *Transaction) {
			tx.Credit = decimal.RequireFromString("2000")
		}, true},
		{"different date", func(tx *Transaction) {
			tx.Date = date(2024, time.January, 3)
		}, false},
		{"different description", func(tx *Transaction) {
			tx.Description = "Bonus"
		}, false},
		{"different amount", func(tx *Transaction) {
			tx.Credit = decimal.NewFromInt(1999)
		}, false},
		{"missing balance", func(tx *Transaction) {
			tx.Balance = decimal.NullDecimal{}
		}, false},
		{"different balance", func(tx *Transaction) {
			tx.Balance = decimal.NullDecimal{Decimal: decimal.NewFromInt(1), Valid: true}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			if got := base.SameMovement(other); got != tt.want {
				t.Errorf("SameMovement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRawRowIsTabular(t *testing.T) {
	if (RawRow{Line: "free text"}).IsTabular() {
		t.Error("line-only row reported as tabular")
	}
	if !(RawRow{Cells: []string{"a"}}).IsTabular() {
		t.Error("row with cells not reported as tabular")
	}
}
