// Package client contains HTTP adapters for the Fintrax core API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
	"github.com/fintrax/analytics-bfa-go/internal/infra/observability"
	"github.com/fintrax/analytics-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("infra/client")

// wireTransaction is the Fintrax core API representation. Dates come
// over the wire as strings and are validated here, at the boundary,
// so the analytics engine only ever sees well-formed records.
type wireTransaction struct {
	ID       uint64  `json:"id"`
	Source   string  `json:"source"`
	Amount   float64 `json:"amount"`
	Type     uint    `json:"type"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Status   uint    `json:"status"`
}

// dateLayouts are accepted in order. The core API emits RFC3339; CSV
// imports historically produced bare dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// TransactionsClient fetches transaction data from the Fintrax core API.
type TransactionsClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewTransactionsClient creates a new TransactionsClient.
func NewTransactionsClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *TransactionsClient {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &TransactionsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(maxConcurrency),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchTransactions fetches user transactions with bulkhead, retry,
// circuit breaker, and tracing. Records whose date cannot be parsed
// are skipped with a warning and a counter bump; a single malformed
// record never fails the whole fetch.
func (c *TransactionsClient) FetchTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "TransactionsClient.FetchTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	var wire []wireTransaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			url := fmt.Sprintf("%s/v1/users/%s/transactions", c.baseURL, userID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return &domain.ErrNotFound{Resource: "transactions", ID: userID}
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("transactions API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&wire)
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "transactions", Err: err}
	}

	txns, skipped := decodeTransactions(wire)
	if skipped > 0 {
		c.logger.Warn("skipped transactions with unparseable dates",
			zap.String("user_id", userID),
			zap.Int("skipped", skipped),
		)
		c.metrics.AddTransactionsSkipped(skipped)
	}
	span.SetAttributes(attribute.Int("transactions.count", len(txns)))
	return txns, nil
}

// decodeTransactions converts wire records to domain transactions,
// normalizing dates to UTC and counting records it has to drop.
func decodeTransactions(wire []wireTransaction) ([]domain.Transaction, int) {
	txns := make([]domain.Transaction, 0, len(wire))
	skipped := 0
	for _, w := range wire {
		date, ok := parseDate(w.Date)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, domain.Transaction{
			ID:       w.ID,
			Source:   w.Source,
			Amount:   w.Amount,
			Type:     domain.TransactionType(w.Type),
			Category: w.Category,
			Date:     date,
			Status:   domain.TransactionStatus(w.Status),
		})
	}
	return txns, skipped
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
