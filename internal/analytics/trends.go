// Package analytics implements the Fintrax finance analytics engine:
// monthly trend aggregation, category breakdowns, and heuristic
// spending insights.
//
// All functions are pure and safe for concurrent use. Callers inject
// the reference time ("now") so results are reproducible in tests; the
// real clock is applied only at the outermost caller.
//
// Time policy: every calendar computation (month bucketing, weekday vs
// weekend, trailing windows) is performed on UTC calendar dates.
// Transactions are expected to arrive with UTC-normalized dates; see
// the transactions client.
package analytics

import (
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// monthLabel is the bucket key and display format for monthly trends.
const monthLabel = "Jan 2006"

// MonthlyTrends buckets transactions into the last `months` calendar
// months ending at now's month (inclusive) and sums income, expense,
// and net per bucket. It always returns exactly `months` entries in
// chronological order; months < 1 is clamped to 1.
//
// Transactions outside the window are dropped. Transactions with a
// zero date are skipped: an unparseable date must never abort the
// aggregation (the deserialization boundary reports those).
func MonthlyTrends(txns []domain.Transaction, months int, now time.Time) []domain.MonthlyTrend {
	if months < 1 {
		months = 1
	}
	now = now.UTC()

	type bucket struct {
		income  float64
		expense float64
	}

	// Ordered window of month keys, oldest first.
	keys := make([]string, 0, months)
	buckets := make(map[string]*bucket, months)
	for i := months - 1; i >= 0; i-- {
		key := firstOfMonth(now).AddDate(0, -i, 0).Format(monthLabel)
		keys = append(keys, key)
		buckets[key] = &bucket{}
	}

	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		b, ok := buckets[t.Date.UTC().Format(monthLabel)]
		if !ok {
			continue // outside the requested window
		}
		switch t.Type {
		case domain.TypeIncome:
			b.income += t.Amount
		case domain.TypeExpense:
			b.expense += t.Amount
		}
	}

	trends := make([]domain.MonthlyTrend, 0, months)
	for _, key := range keys {
		b := buckets[key]
		trends = append(trends, domain.MonthlyTrend{
			Month:   key,
			Income:  b.income,
			Expense: b.expense,
			Net:     b.income - b.expense,
		})
	}
	return trends
}

// firstOfMonth truncates t to the first day of its UTC calendar month.
// AddDate on day 1 avoids end-of-month normalization surprises
// (e.g. Mar 31 minus one month is Mar 3).
func firstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
