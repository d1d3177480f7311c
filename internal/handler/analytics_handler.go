package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
	"github.com/fintrax/analytics-bfa-go/internal/export"
	"github.com/fintrax/analytics-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Finance Analytics
// ============================================================

func monthlyTrendsHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/analytics/trends")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		months, err := parseMonths(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		trends, err := svc.MonthlyTrends(ctx, userID, months)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, trends)
	}
}

func categoryBreakdownHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/analytics/categories")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		txType, ok := domain.ParseTransactionType(r.URL.Query().Get("type"))
		if !ok {
			writeError(w, http.StatusBadRequest, "type must be 'income' or 'expense'")
			return
		}

		breakdown, err := svc.CategoryBreakdown(ctx, userID, txType)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, breakdown)
	}
}

func spendingInsightsHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/analytics/insights")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		insights, err := svc.SpendingInsights(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, insights)
	}
}

func analyticsReportHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/analytics/report")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		months, err := parseMonths(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		report, err := svc.Report(ctx, userID, months)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func exportCSVHandler(svc *service.AnalyticsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/analytics/export")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		filename := r.URL.Query().Get("filename")
		if filename == "" {
			filename = export.DefaultFilename
		} else if !strings.HasSuffix(filename, ".csv") {
			filename += ".csv"
		}

		// Buffer the CSV so a fetch failure can still produce a clean
		// error response instead of a truncated download.
		var buf bytes.Buffer
		if err := svc.ExportCSV(ctx, userID, &buf); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logger.Warn("csv export write failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}
}
