package analytics

import (
	"sort"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// uncategorized is the label applied to transactions without a category.
const uncategorized = "Uncategorized"

// CategoryBreakdown groups transactions of the requested type by
// category and computes amount, share of the type total, and count.
// Results are sorted descending by amount; equal amounts keep their
// first-seen order so output is deterministic.
//
// When the type total is zero every percentage is 0 (never NaN).
func CategoryBreakdown(txns []domain.Transaction, txType domain.TransactionType) []domain.CategoryBreakdown {
	type group struct {
		amount float64
		count  int
	}

	// Insertion order drives tie-breaking, so track it alongside the map.
	order := make([]string, 0)
	groups := make(map[string]*group)

	var total float64
	for _, t := range txns {
		if t.Type != txType {
			continue
		}
		category := t.Category
		if category == "" {
			category = uncategorized
		}
		g, ok := groups[category]
		if !ok {
			g = &group{}
			groups[category] = g
			order = append(order, category)
		}
		g.amount += t.Amount
		g.count++
		total += t.Amount
	}

	breakdown := make([]domain.CategoryBreakdown, 0, len(order))
	for _, category := range order {
		g := groups[category]
		pct := 0.0
		if total > 0 {
			pct = g.amount / total * 100
		}
		breakdown = append(breakdown, domain.CategoryBreakdown{
			Category:   category,
			Amount:     g.amount,
			Percentage: pct,
			Count:      g.count,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	return breakdown
}
