// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// TransactionSource retrieves a user's transactions from the Fintrax
// core API (or any other backing store). Implementations own the
// deserialization boundary: records with unparseable dates are skipped
// with a diagnostic, never returned.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
