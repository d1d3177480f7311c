package handler

import (
	"net/http"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
	"github.com/fintrax/analytics-bfa-go/internal/infra/observability"
	"github.com/fintrax/analytics-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterConfig carries the router-level settings.
type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract expected by the Fintrax web and
// mobile frontends.
func NewRouter(svc *service.AnalyticsService, validator *service.TokenValidator, metrics *observability.Metrics, logger *zap.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		if validator != nil {
			r.Use(JWTAuthMiddleware(validator, logger))
		}

		r.Route("/users/{userId}/analytics", func(r chi.Router) {
			r.Get("/trends", monthlyTrendsHandler(svc, logger))
			r.Get("/categories", categoryBreakdownHandler(svc, logger))
			r.Get("/insights", spendingInsightsHandler(svc, logger))
			r.Get("/report", analyticsReportHandler(svc, logger))
			r.Get("/export", exportCSVHandler(svc, logger))
		})

		r.Get("/metrics/analytics", engineMetricsHandler(metrics))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status: "healthy",
			Services: []domain.ServiceHealth{
				{
					Name:        "analytics-bfa",
					Status:      "healthy",
					LastChecked: time.Now().UTC().Format(time.RFC3339),
				},
			},
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func engineMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetEngineSnapshot())
	}
}
