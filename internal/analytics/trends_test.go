package analytics_test

import (
	"testing"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/analytics"
	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// fixedNow pins the reference clock: Saturday, March 15, 2025 (UTC).
var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyTrends_EmptyInput(t *testing.T) {
	trends := analytics.MonthlyTrends(nil, 6, fixedNow)

	if len(trends) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(trends))
	}
	for _, tr := range trends {
		if tr.Income != 0 || tr.Expense != 0 || tr.Net != 0 {
			t.Errorf("bucket %s: expected all zeros, got %+v", tr.Month, tr)
		}
	}
}

func TestMonthlyTrends_WindowLabelsAndOrder(t *testing.T) {
	trends := analytics.MonthlyTrends(nil, 3, fixedNow)

	want := []string{"Jan 2025", "Feb 2025", "Mar 2025"}
	if len(trends) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(trends))
	}
	for i, label := range want {
		if trends[i].Month != label {
			t.Errorf("bucket %d: expected %q, got %q", i, label, trends[i].Month)
		}
	}
}

func TestMonthlyTrends_Aggregation(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 3000, Type: domain.TypeIncome, Date: date(2025, time.March, 1)},
		{Amount: 500, Type: domain.TypeExpense, Date: date(2025, time.March, 10)},
		{Amount: 200, Type: domain.TypeExpense, Date: date(2025, time.March, 12)},
		{Amount: 2800, Type: domain.TypeIncome, Date: date(2025, time.February, 1)},
	}

	trends := analytics.MonthlyTrends(txns, 2, fixedNow)
	if len(trends) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(trends))
	}

	feb, mar := trends[0], trends[1]
	if feb.Income != 2800 || feb.Expense != 0 || feb.Net != 2800 {
		t.Errorf("Feb: unexpected bucket %+v", feb)
	}
	if mar.Income != 3000 || mar.Expense != 700 || mar.Net != 2300 {
		t.Errorf("Mar: unexpected bucket %+v", mar)
	}
}

func TestMonthlyTrends_DropsOutOfWindow(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: domain.TypeExpense, Date: date(2024, time.March, 15)}, // a year ago
		{Amount: 50, Type: domain.TypeExpense, Date: date(2025, time.March, 14)},
	}

	trends := analytics.MonthlyTrends(txns, 2, fixedNow)
	var total float64
	for _, tr := range trends {
		total += tr.Expense
	}
	if total != 50 {
		t.Errorf("expected only in-window expense 50, got %v", total)
	}
}

func TestMonthlyTrends_IgnoresUnknownType(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: 7, Date: date(2025, time.March, 1)},
		{Amount: 40, Type: domain.TypeIncome, Date: date(2025, time.March, 1)},
	}

	trends := analytics.MonthlyTrends(txns, 1, fixedNow)
	if trends[0].Income != 40 || trends[0].Expense != 0 {
		t.Errorf("unknown type must contribute to no sum, got %+v", trends[0])
	}
}

func TestMonthlyTrends_SkipsZeroDates(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: domain.TypeExpense}, // zero date
		{Amount: 25, Type: domain.TypeExpense, Date: date(2025, time.March, 3)},
	}

	trends := analytics.MonthlyTrends(txns, 1, fixedNow)
	if trends[0].Expense != 25 {
		t.Errorf("expected zero-date transaction skipped, got expense %v", trends[0].Expense)
	}
}

func TestMonthlyTrends_ClampsMonths(t *testing.T) {
	trends := analytics.MonthlyTrends(nil, 0, fixedNow)
	if len(trends) != 1 {
		t.Errorf("months < 1 should clamp to 1, got %d buckets", len(trends))
	}
}

func TestMonthlyTrends_IncomeSumMatchesWindowTotal(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: domain.TypeIncome, Date: date(2025, time.January, 5)},
		{Amount: 200, Type: domain.TypeIncome, Date: date(2025, time.February, 5)},
		{Amount: 300, Type: domain.TypeIncome, Date: date(2025, time.March, 5)},
		{Amount: 999, Type: domain.TypeIncome, Date: date(2024, time.June, 5)}, // outside
	}

	trends := analytics.MonthlyTrends(txns, 6, fixedNow)
	var total float64
	for _, tr := range trends {
		total += tr.Income
	}
	if total != 600 {
		t.Errorf("expected window income total 600, got %v", total)
	}
}
