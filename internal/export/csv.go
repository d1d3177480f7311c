// Package export serializes transaction lists for download by the
// Fintrax frontends. The HTTP handler turns the byte stream into a
// file attachment; this package only produces the CSV text.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/fintrax/analytics-bfa-go/internal/domain"
)

// csvHeader is the fixed column order expected by the frontend.
var csvHeader = []string{"Date", "Source", "Category", "Type", "Amount", "Status"}

// DefaultFilename is used when the caller does not name the download.
const DefaultFilename = "transactions.csv"

// WriteTransactionsCSV writes the transactions as CSV. The header row
// is plain; every data field is wrapped in double quotes (embedded
// quotes are doubled) so free-text sources and categories with commas
// cannot break the row structure. encoding/csv only quotes when it
// must, so the quoting is done here.
//
// Dates are formatted as YYYY-MM-DD in UTC; amounts with exactly two
// decimals; category falls back to "N/A" when absent.
func WriteTransactionsCSV(w io.Writer, txns []domain.Transaction) error {
	if _, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n"); err != nil {
		return err
	}
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = "N/A"
		}
		row := []string{
			t.Date.UTC().Format("2006-01-02"),
			t.Source,
			category,
			t.Type.String(),
			fmt.Sprintf("%.2f", t.Amount),
			t.Status.String(),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}
