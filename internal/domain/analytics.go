package domain

// ============================================================
// Analytics view models
// ============================================================

// These records are ephemeral: computed fresh on every call, never
// persisted, and owned by the caller for a single request cycle.

// MonthlyTrend aggregates income and expense for one calendar month.
type MonthlyTrend struct {
	Month   string  `json:"month"` // "Jan 2006"
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CategoryBreakdown aggregates transactions of one type by category.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// InsightType classifies a spending insight for frontend styling.
type InsightType string

const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
)

// SpendingInsight is a heuristic, human-readable observation about
// spending patterns. Order in a slice reflects the fixed rule
// evaluation sequence, not a ranking.
type SpendingInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// AnalyticsReport is the combined payload returned by the
// full-report endpoint.
type AnalyticsReport struct {
	ReportID          string              `json:"reportId"`
	UserID            string              `json:"userId"`
	Months            int                 `json:"months"`
	GeneratedAt       string              `json:"generatedAt"` // RFC3339
	MonthlyTrends     []MonthlyTrend      `json:"monthlyTrends"`
	IncomeCategories  []CategoryBreakdown `json:"incomeCategories"`
	ExpenseCategories []CategoryBreakdown `json:"expenseCategories"`
	Insights          []SpendingInsight   `json:"insights"`
}

// EngineMetrics is returned by GET /v1/metrics/analytics.
type EngineMetrics struct {
	TotalRequests       int64   `json:"totalRequests"`
	ErrorRate           float64 `json:"errorRate"`
	CacheHitRate        float64 `json:"cacheHitRate"`
	TransactionsSkipped int64   `json:"transactionsSkipped"`
	InsightsGenerated   int64   `json:"insightsGenerated"`
	Period              string  `json:"period"`
}
