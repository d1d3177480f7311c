package analytics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/analytics"
	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

func findInsight(insights []domain.SpendingInsight, title string) *domain.SpendingInsight {
	for i := range insights {
		if strings.Contains(insights[i].Title, title) {
			return &insights[i]
		}
	}
	return nil
}

func TestSpendingInsights_EmptyInput(t *testing.T) {
	insights := analytics.SpendingInsights(nil, fixedNow)
	if insights == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(insights) != 0 {
		t.Errorf("expected no insights, got %d", len(insights))
	}
}

func TestSpendingInsights_HighSpendingAlert(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 1000, Type: domain.TypeIncome, Source: "Salary", Date: date(2025, time.March, 10)},
		{Amount: 950, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.March, 10)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	alert := findInsight(insights, "High Spending")
	if alert == nil {
		t.Fatalf("expected a High Spending insight, got %+v", insights)
	}
	if alert.Type != domain.InsightWarning {
		t.Errorf("expected warning, got %s", alert.Type)
	}
	if !strings.Contains(alert.Description, "95%") {
		t.Errorf("expected 95%% in description, got %q", alert.Description)
	}
}

func TestSpendingInsights_GreatSavings(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 5000, Type: domain.TypeIncome, Date: date(2025, time.March, 5)},
		{Amount: 2000, Type: domain.TypeExpense, Category: "Food", Date: date(2025, time.March, 6)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	savings := findInsight(insights, "Great Savings")
	if savings == nil {
		t.Fatalf("expected a Great Savings insight, got %+v", insights)
	}
	if savings.Type != domain.InsightSuccess {
		t.Errorf("expected success, got %s", savings.Type)
	}
	if !strings.Contains(savings.Description, "60%") {
		t.Errorf("expected 60%% saved in description, got %q", savings.Description)
	}
}

func TestSpendingInsights_RatioRuleSkippedWithoutIncome(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: domain.TypeExpense, Category: "Food", Date: date(2025, time.March, 10)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	if findInsight(insights, "High Spending Alert") != nil {
		t.Error("ratio rule must be skipped when there is no income")
	}
	if findInsight(insights, "Great Savings") != nil {
		t.Error("savings rule must be skipped when there is no income")
	}
}

func TestSpendingInsights_TopCategoryWarning(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 500, Type: domain.TypeExpense, Category: "Food", Date: date(2025, time.March, 10)},
		{Amount: 300, Type: domain.TypeExpense, Category: "Transport", Date: date(2025, time.March, 11)},
	}

	// Food is 62.5% of spending, above the 40% threshold.
	insights := analytics.SpendingInsights(txns, fixedNow)
	warning := findInsight(insights, "High Food Spending")
	if warning == nil {
		t.Fatalf("expected High Food Spending warning, got %+v", insights)
	}
	if warning.Type != domain.InsightWarning {
		t.Errorf("expected warning, got %s", warning.Type)
	}
	if !strings.Contains(warning.Description, "63%") {
		t.Errorf("expected rounded 63%% in description, got %q", warning.Description)
	}
}

func TestSpendingInsights_TopCategoryInfo(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Type: domain.TypeExpense, Category: "Food", Date: date(2025, time.March, 10)},
		{Amount: 90, Type: domain.TypeExpense, Category: "Transport", Date: date(2025, time.March, 11)},
		{Amount: 80, Type: domain.TypeExpense, Category: "Fun", Date: date(2025, time.March, 12)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	info := findInsight(insights, "Top Expense Category")
	if info == nil {
		t.Fatalf("expected Top Expense Category info, got %+v", insights)
	}
	if info.Type != domain.InsightInfo {
		t.Errorf("expected info, got %s", info.Type)
	}
	if !strings.Contains(info.Description, "Food") {
		t.Errorf("expected Food named in description, got %q", info.Description)
	}
}

func TestSpendingInsights_WeekendPattern(t *testing.T) {
	txns := []domain.Transaction{
		// March 8, 2025 is a Saturday; March 10 a Monday.
		{Amount: 200, Type: domain.TypeExpense, Category: "Fun", Date: date(2025, time.March, 8)},
		{Amount: 100, Type: domain.TypeExpense, Category: "Food", Date: date(2025, time.March, 10)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	weekend := findInsight(insights, "Weekend Spending Pattern")
	if weekend == nil {
		t.Fatalf("expected Weekend Spending Pattern, got %+v", insights)
	}
	if !strings.Contains(weekend.Description, "100%") {
		t.Errorf("expected 100%% more on weekends, got %q", weekend.Description)
	}
}

func TestSpendingInsights_WeekendSkippedWithoutWeekdayBaseline(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 200, Type: domain.TypeExpense, Category: "Fun", Date: date(2025, time.March, 8)}, // Saturday
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	if findInsight(insights, "Weekend Spending Pattern") != nil {
		t.Error("weekend rule must be skipped when the weekday average is zero")
	}
}

func TestSpendingInsights_TransactionFrequency(t *testing.T) {
	// 100 transactions in the trailing 30 days averages 3.3/day.
	txns := make([]domain.Transaction, 0, 100)
	for i := 0; i < 100; i++ {
		txns = append(txns, domain.Transaction{
			Amount: 5,
			Type:   domain.TypeExpense,
			Date:   fixedNow.AddDate(0, 0, -(i % 25)),
		})
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	freq := findInsight(insights, "High Transaction Frequency")
	if freq == nil {
		t.Fatalf("expected High Transaction Frequency, got %+v", insights)
	}
	if !strings.Contains(freq.Description, "3.3") {
		t.Errorf("expected 3.3 per day in description, got %q", freq.Description)
	}
}

func TestSpendingInsights_MonthOverMonthIncrease(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 1300, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.March, 5)},
		{Amount: 1000, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.February, 5)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	change := findInsight(insights, "Monthly Spending Change")
	if change == nil {
		t.Fatalf("expected Monthly Spending Change, got %+v", insights)
	}
	if change.Type != domain.InsightWarning {
		t.Errorf("increase should be a warning, got %s", change.Type)
	}
	if !strings.Contains(change.Description, "increased by 30.0%") {
		t.Errorf("unexpected description %q", change.Description)
	}
}

func TestSpendingInsights_MonthOverMonthDecrease(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 700, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.March, 5)},
		{Amount: 1000, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.February, 5)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	change := findInsight(insights, "Monthly Spending Change")
	if change == nil {
		t.Fatalf("expected Monthly Spending Change, got %+v", insights)
	}
	if change.Type != domain.InsightSuccess {
		t.Errorf("decrease should be a success, got %s", change.Type)
	}
	if !strings.Contains(change.Description, "decreased by 30.0%") {
		t.Errorf("unexpected description %q", change.Description)
	}
}

func TestSpendingInsights_MonthOverMonthSkippedWithoutPriorMonth(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 1300, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.March, 5)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	if findInsight(insights, "Monthly Spending Change") != nil {
		t.Error("month-over-month rule must be skipped when last month has no expenses")
	}
}

func TestSpendingInsights_RuleOrder(t *testing.T) {
	// Triggers the ratio rule and the top-category rule; ratio must
	// come first because the rule sequence is fixed.
	txns := []domain.Transaction{
		{Amount: 1000, Type: domain.TypeIncome, Date: date(2025, time.March, 3)},
		{Amount: 950, Type: domain.TypeExpense, Category: "Rent", Date: date(2025, time.March, 4)},
	}

	insights := analytics.SpendingInsights(txns, fixedNow)
	if len(insights) < 2 {
		t.Fatalf("expected at least 2 insights, got %+v", insights)
	}
	if insights[0].Title != "High Spending Alert" {
		t.Errorf("expected ratio insight first, got %q", insights[0].Title)
	}
	if insights[1].Title != "High Rent Spending" {
		t.Errorf("expected top-category insight second, got %q", insights[1].Title)
	}
}
