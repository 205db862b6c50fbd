// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/MahendraD2/CashFlowManagement/internal/analysis"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []analysis.Result) {
	_ = WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable table for every result to w.
func WritePretty(w io.Writer, results []analysis.Result) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\n", result.Description)
		_, _ = fmt.Fprintf(w, "Month    | Original      | Modified      | Difference\n")
		_, _ = fmt.Fprintf(w, "_____    | _____________ | _____________ | __________\n")
		for m, month := range result.Original.Months {
			original := mathutil.At(result.Original.Values, m)
			modified := mathutil.At(result.Modified.Values, m)
			_, _ = p.Fprintf(w, "%s | $%.2f | $%.2f | $%.2f\n", month, original, modified, modified-original)
		}

		s := result.Impact
		_, _ = fmt.Fprintf(w, "\nImpact Summary\n")
		_, _ = p.Fprintf(w, "Revenue Impact   | $%.0f\n", s.RevenueImpact)
		_, _ = p.Fprintf(w, "Expense Impact   | $%.0f\n", s.ExpenseImpact)
		_, _ = p.Fprintf(w, "Cash Flow Impact | $%.0f\n", s.CashFlowImpact)
		_, _ = p.Fprintf(w, "Profit Impact    | $%.0f (%.1f%%)\n", s.ProfitImpact, s.ProfitImpactPercentage)
		_, _ = fmt.Fprintf(w, "Risk Level       | %s\n", s.RiskLevel)
		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []analysis.Result) {
	_ = WriteCSV(os.Stdout, results)
}

// WriteCSV writes one export block per result, separated by a blank line.
// With several results each block is preceded by a Scenario row.
func WriteCSV(w io.Writer, results []analysis.Result) error {
	for i, result := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if len(results) > 1 {
			if err := writeRecords(w, [][]string{{"Scenario", result.Name}}); err != nil {
				return err
			}
		}
		if err := writeExport(w, result); err != nil {
			return err
		}
	}
	return nil
}

// CsvString renders a single result as a CSV export: monthly rows, a blank
// line, then the impact summary.
func CsvString(result analysis.Result) (string, error) {
	var buf bytes.Buffer
	if err := writeExport(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeExport(w io.Writer, result analysis.Result) error {
	rows := [][]string{{"Month", "Original Cash Flow", "Modified Cash Flow", "Difference"}}
	for m, month := range result.Original.Months {
		original := mathutil.At(result.Original.Values, m)
		modified := mathutil.At(result.Modified.Values, m)
		rows = append(rows, []string{month, money(original), money(modified), money(modified - original)})
	}
	if err := writeRecords(w, rows); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	s := result.Impact
	return writeRecords(w, [][]string{
		{"Impact Summary"},
		{"Revenue Impact", whole(s.RevenueImpact)},
		{"Expense Impact", whole(s.ExpenseImpact)},
		{"Cash Flow Impact", whole(s.CashFlowImpact)},
		{"Profit Impact", whole(s.ProfitImpact)},
		{"Risk Level", s.RiskLevel},
	})
}

func writeRecords(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func whole(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}
