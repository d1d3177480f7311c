package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// insightContext carries the aggregates shared by the insight rules so
// each rule stays a small pure predicate over precomputed values.
type insightContext struct {
	now      time.Time
	all      []domain.Transaction
	income   []domain.Transaction
	expenses []domain.Transaction

	totalIncome  float64
	totalExpense float64
}

// insightRule inspects the aggregates and returns one insight or nil.
type insightRule func(*insightContext) *domain.SpendingInsight

// spendingRules is the fixed evaluation sequence. Every rule runs; the
// slice order is the output order, which keeps results deterministic
// and lets a rule be added, removed, or reordered in one line.
var spendingRules = []insightRule{
	spendingRatioRule,
	topExpenseCategoryRule,
	weekendSpendingRule,
	transactionFrequencyRule,
	monthOverMonthRule,
}

// SpendingInsights evaluates the heuristic rule sequence over the
// transactions and returns the generated insights in rule order.
// It returns an empty slice when there are no income and no expense
// transactions. Comparisons use unrounded values; rounding in the
// messages is display-only.
func SpendingInsights(txns []domain.Transaction, now time.Time) []domain.SpendingInsight {
	ctx := &insightContext{now: now.UTC(), all: txns}
	for _, t := range txns {
		switch t.Type {
		case domain.TypeIncome:
			ctx.income = append(ctx.income, t)
			ctx.totalIncome += t.Amount
		case domain.TypeExpense:
			ctx.expenses = append(ctx.expenses, t)
			ctx.totalExpense += t.Amount
		}
	}

	insights := make([]domain.SpendingInsight, 0, len(spendingRules))
	if len(ctx.income) == 0 && len(ctx.expenses) == 0 {
		return insights
	}

	for _, rule := range spendingRules {
		if insight := rule(ctx); insight != nil {
			insights = append(insights, *insight)
		}
	}
	return insights
}

// spendingRatioRule compares total expenses against total income.
// Skipped entirely when there is no income, to avoid dividing by zero.
func spendingRatioRule(ctx *insightContext) *domain.SpendingInsight {
	if ctx.totalIncome <= 0 {
		return nil
	}
	if ctx.totalExpense > ctx.totalIncome*0.9 {
		pct := math.Round(ctx.totalExpense / ctx.totalIncome * 100)
		return &domain.SpendingInsight{
			Type:        domain.InsightWarning,
			Title:       "High Spending Alert",
			Description: fmt.Sprintf("You're spending %.0f%% of your income. Consider reducing expenses.", pct),
		}
	}
	if ctx.totalExpense < ctx.totalIncome*0.7 {
		pct := math.Round((ctx.totalIncome - ctx.totalExpense) / ctx.totalIncome * 100)
		return &domain.SpendingInsight{
			Type:        domain.InsightSuccess,
			Title:       "Great Savings!",
			Description: fmt.Sprintf("You're saving %.0f%% of your income. Keep it up!", pct),
		}
	}
	return nil
}

// topExpenseCategoryRule flags the highest-amount expense category:
// a warning above a 40% share, otherwise an informational note.
func topExpenseCategoryRule(ctx *insightContext) *domain.SpendingInsight {
	breakdown := CategoryBreakdown(ctx.expenses, domain.TypeExpense)
	if len(breakdown) == 0 {
		return nil
	}
	top := breakdown[0]
	pct := math.Round(top.Percentage)
	if top.Percentage > 40 {
		return &domain.SpendingInsight{
			Type:        domain.InsightWarning,
			Title:       fmt.Sprintf("High %s Spending", top.Category),
			Description: fmt.Sprintf("%s accounts for %.0f%% of your expenses.", top.Category, pct),
		}
	}
	return &domain.SpendingInsight{
		Type:        domain.InsightInfo,
		Title:       "Top Expense Category",
		Description: fmt.Sprintf("Your biggest expense is %s at %.0f%% of total spending.", top.Category, pct),
	}
}

// weekendSpendingRule compares per-transaction expense averages on
// weekends (Sat/Sun, UTC) against weekdays. Skipped when the weekday
// average is zero: no meaningful percentage exists then.
func weekendSpendingRule(ctx *insightContext) *domain.SpendingInsight {
	var weekendSum, weekdaySum float64
	var weekendCount, weekdayCount int
	for _, t := range ctx.expenses {
		if t.Date.IsZero() {
			continue
		}
		switch t.Date.UTC().Weekday() {
		case time.Saturday, time.Sunday:
			weekendSum += t.Amount
			weekendCount++
		default:
			weekdaySum += t.Amount
			weekdayCount++
		}
	}

	weekendAvg := average(weekendSum, weekendCount)
	weekdayAvg := average(weekdaySum, weekdayCount)
	if weekdayAvg == 0 || weekendCount == 0 {
		return nil
	}
	if weekendAvg > weekdayAvg*1.3 {
		pct := math.Round((weekendAvg - weekdayAvg) / weekdayAvg * 100)
		return &domain.SpendingInsight{
			Type:        domain.InsightInfo,
			Title:       "Weekend Spending Pattern",
			Description: fmt.Sprintf("You spend %.0f%% more on weekends.", pct),
		}
	}
	return nil
}

// transactionFrequencyRule reports when the trailing 30-day window
// averages more than three transactions per day.
func transactionFrequencyRule(ctx *insightContext) *domain.SpendingInsight {
	cutoff := ctx.now.AddDate(0, 0, -30)
	recent := 0
	for _, t := range ctx.all {
		if !t.Date.IsZero() && t.Date.UTC().After(cutoff) {
			recent++
		}
	}
	avgPerDay := float64(recent) / 30
	if avgPerDay <= 3 {
		return nil
	}
	return &domain.SpendingInsight{
		Type:        domain.InsightInfo,
		Title:       "High Transaction Frequency",
		Description: fmt.Sprintf("You're making an average of %.1f transactions per day.", avgPerDay),
	}
}

// monthOverMonthRule compares expense totals of the current calendar
// month against the previous one; a swing over 20% is worth a note.
func monthOverMonthRule(ctx *insightContext) *domain.SpendingInsight {
	thisMonth := firstOfMonth(ctx.now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var thisTotal, lastTotal float64
	for _, t := range ctx.expenses {
		if t.Date.IsZero() {
			continue
		}
		month := firstOfMonth(t.Date)
		if month.Equal(thisMonth) {
			thisTotal += t.Amount
		} else if month.Equal(lastMonth) {
			lastTotal += t.Amount
		}
	}
	if lastTotal <= 0 {
		return nil
	}

	change := (thisTotal - lastTotal) / lastTotal * 100
	if math.Abs(change) <= 20 {
		return nil
	}

	direction := "decreased"
	insightType := domain.InsightSuccess
	if change > 0 {
		direction = "increased"
		insightType = domain.InsightWarning
	}
	return &domain.SpendingInsight{
		Type:        insightType,
		Title:       "Monthly Spending Change",
		Description: fmt.Sprintf("Your spending %s by %.1f%% compared to last month.", direction, math.Abs(change)),
	}
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
