// Package service provides the business logic layer (use cases).
// AnalyticsService orchestrates transaction fetching and the pure
// analytics engine: monthly trends, category breakdowns, spending
// insights, and CSV export.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/analytics"
	"github.com/fintrax/analytics-bfa-go/internal/domain"
	"github.com/fintrax/analytics-bfa-go/internal/export"
	"github.com/fintrax/analytics-bfa-go/internal/infra/observability"
	"github.com/fintrax/analytics-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/analytics")

// DefaultTrendMonths is the window used when the caller does not ask
// for a specific number of months.
const DefaultTrendMonths = 6

// MaxTrendMonths bounds the requested window; five years of monthly
// buckets is more than the frontends ever chart.
const MaxTrendMonths = 60

// AnalyticsService computes analytics views over a user's transactions.
type AnalyticsService struct {
	source  port.TransactionSource
	cache   port.Cache[[]domain.Transaction]
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new analytics service using the real clock.
func NewAnalyticsService(source port.TransactionSource, cache port.Cache[[]domain.Transaction], metrics *observability.Metrics, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		source:  source,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the reference clock. Tests use this to pin "now".
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// getTransactions fetches the user's transactions, serving from the
// TTL cache when possible.
func (s *AnalyticsService) getTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	cacheKey := fmt.Sprintf("transactions:%s", userID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("transactions")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("transactions")

	txns, err := s.source.FetchTransactions(ctx, userID)
	if err != nil {
		s.logger.Error("failed to fetch transactions",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		s.metrics.IncrExternalError("transactions")
		return nil, fmt.Errorf("transactions fetch: %w", err)
	}
	s.cache.Set(cacheKey, txns)
	return txns, nil
}

// MonthlyTrends returns income/expense/net sums for the last `months`
// calendar months ending at the current one.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context, userID string, months int) ([]domain.MonthlyTrend, error) {
	ctx, span := tracer.Start(ctx, "AnalyticsService.MonthlyTrends")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID), attribute.Int("months", months))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("trends", time.Since(start))
	}()

	txns, err := s.getTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}
	s.metrics.IncrRequest("success")
	return analytics.MonthlyTrends(txns, clampMonths(months), s.now()), nil
}

// CategoryBreakdown returns per-category sums for the requested
// transaction type, sorted descending by amount.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID string, txType domain.TransactionType) ([]domain.CategoryBreakdown, error) {
	ctx, span := tracer.Start(ctx, "AnalyticsService.CategoryBreakdown")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("categories", time.Since(start))
	}()

	txns, err := s.getTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}
	s.metrics.IncrRequest("success")
	return analytics.CategoryBreakdown(txns, txType), nil
}

// SpendingInsights evaluates the heuristic insight rules over the
// user's transactions.
func (s *AnalyticsService) SpendingInsights(ctx context.Context, userID string) ([]domain.SpendingInsight, error) {
	ctx, span := tracer.Start(ctx, "AnalyticsService.SpendingInsights")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("insights", time.Since(start))
	}()

	txns, err := s.getTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	insights := analytics.SpendingInsights(txns, s.now())
	s.metrics.RecordInsights(insights)
	s.metrics.IncrRequest("success")
	return insights, nil
}

// Report computes the full analytics payload in one call: monthly
// trends, both category breakdowns, and insights. The aggregates are
// independent, so they run concurrently over the same snapshot.
func (s *AnalyticsService) Report(ctx context.Context, userID string, months int) (*domain.AnalyticsReport, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "AnalyticsService.Report")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID), attribute.Int("months", months))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report", time.Since(start))
	}()

	txns, err := s.getTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	months = clampMonths(months)
	now := s.now()

	report := &domain.AnalyticsReport{
		ReportID:    uuid.NewString(),
		UserID:      userID,
		Months:      months,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.MonthlyTrends = analytics.MonthlyTrends(txns, months, now)
		return nil
	})
	g.Go(func() error {
		report.IncomeCategories = analytics.CategoryBreakdown(txns, domain.TypeIncome)
		return nil
	})
	g.Go(func() error {
		report.ExpenseCategories = analytics.CategoryBreakdown(txns, domain.TypeExpense)
		return nil
	})
	g.Go(func() error {
		report.Insights = analytics.SpendingInsights(txns, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	s.metrics.RecordInsights(report.Insights)
	s.metrics.IncrRequest("success")
	return report, nil
}

// ExportCSV streams the user's transactions as CSV to w.
func (s *AnalyticsService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	ctx, span := tracer.Start(ctx, "AnalyticsService.ExportCSV")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("export", time.Since(start))
	}()

	txns, err := s.getTransactions(ctx, userID)
	if err != nil {
		s.metrics.IncrRequest("error")
		return err
	}
	if err := export.WriteTransactionsCSV(w, txns); err != nil {
		s.metrics.IncrRequest("error")
		return fmt.Errorf("write csv: %w", err)
	}
	s.metrics.IncrRequest("success")
	return nil
}

func clampMonths(months int) int {
	if months < 1 {
		return DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		return MaxTrendMonths
	}
	return months
}
