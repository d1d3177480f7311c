// Package domain defines the core business entities for the Fintrax
// analytics service. These models are independent of external services
// and represent the canonical data structures used throughout the BFF.
package domain

import "time"

// ============================================================
// Transactions
// ============================================================

// TransactionType distinguishes income from expense records.
// Any other value is tolerated by the aggregators: such transactions
// simply contribute to no type-specific sum.
type TransactionType uint

const (
	TypeIncome  TransactionType = 1
	TypeExpense TransactionType = 2
)

// String returns the display label used in CSV exports and API responses.
func (t TransactionType) String() string {
	if t == TypeIncome {
		return "Income"
	}
	return "Expense"
}

// ParseTransactionType maps the query-string value used by the
// analytics endpoints to a TransactionType.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "income", "1":
		return TypeIncome, true
	case "expense", "2", "":
		return TypeExpense, true
	}
	return 0, false
}

// TransactionStatus distinguishes active from soft-deleted records.
// The analytics engine does not filter by status; callers pass only
// the transactions they want included.
type TransactionStatus uint

const (
	StatusActive  TransactionStatus = 1
	StatusDeleted TransactionStatus = 2
)

// String returns the display label used in CSV exports.
func (s TransactionStatus) String() string {
	if s == StatusActive {
		return "Active"
	}
	return "Deleted"
}

// Transaction represents a single financial transaction as stored by
// the Fintrax core API. Dates carry calendar-day semantics only and
// are normalized to UTC at the deserialization boundary.
type Transaction struct {
	ID       uint64            `json:"id"`
	Source   string            `json:"source"`
	Amount   float64           `json:"amount"` // non-negative magnitude
	Type     TransactionType   `json:"type"`
	Category string            `json:"category,omitempty"`
	Date     time.Time         `json:"date"`
	Status   TransactionStatus `json:"status"`
}
