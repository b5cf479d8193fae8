package domain

import (
	"testing"
	"time"
)

func TestMonthKeyString(t *testing.T) {
	tests := []struct {
		key  MonthKey
		want string
	}{
		{MonthKey{Year: 2024, Month: time.January}, "2024-01"},
		{MonthKey{Year: 2024, Month: time.December}, "2024-12"},
		{MonthKey{Year: 987, Month: time.June}, "0987-06"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMonthKeyBefore(t *testing.T) {
	jan24 := MonthKey{Year: 2024, Month: time.January}
	dec23 := MonthKey{Year: 2023, Month: time.December}
	feb24 := MonthKey{Year: 2024, Month: time.February}

	if !dec23.Before(jan24) {
		t.Error("2023-12 should sort before 2024-01")
	}
	if !jan24.Before(feb24) {
		t.Error("2024-01 should sort before 2024-02")
	}
	if feb24.Before(jan24) {
		t.Error("2024-02 must not sort before 2024-01")
	}
	if jan24.Before(jan24) {
		t.Error("a key must not sort before itself")
	}
}

func TestMonthOf(t *testing.T) {
	got := MonthOf(time.Date(2024, time.July, 31, 23, 59, 0, 0, time.UTC))
	want := MonthKey{Year: 2024, Month: time.July}
	if got != want {
		t.Errorf("MonthOf() = %v, want %v", got, want)
	}
}
