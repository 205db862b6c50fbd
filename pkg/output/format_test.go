package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/MahendraD2/CashFlowManagement/internal/analysis"
	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/impact"
)

func sampleResult(name string) analysis.Result {
	return analysis.Result{
		Name:        name,
		Description: "Impact of clients delaying payments by 30 days",
		Original: dataset.Snapshot{
			Months:    []string{"Jan", "Feb", "Mar"},
			Values:    []float64{1000, 1000, 1000},
			NetProfit: 3000,
		},
		Modified: dataset.Snapshot{
			Months:    []string{"Jan", "Feb", "Mar"},
			Values:    []float64{650, 1329, 1000},
			NetProfit: 2974,
		},
		Impact: impact.Summary{
			RevenueImpact:  -21,
			ExpenseImpact:  5,
			CashFlowImpact: -21,
			ProfitImpact:   -26,
			RiskLevel:      "Medium",
		},
		Warnings: []string{"something to note"},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat([]analysis.Result{sampleResult("Late payers")})
	})

	expected := []string{
		"--- Results for scenario Late payers ---",
		"Month    | Original      | Modified      | Difference",
		"Jan | $1,000.00 | $650.00 | $-350.00",
		"Feb | $1,000.00 | $1,329.00 | $329.00",
		"Impact Summary",
		"Profit Impact    | $-26",
		"Risk Level       | Medium",
		"Warning: something to note",
	}
	for _, e := range expected {
		if !strings.Contains(output, e) {
			t.Errorf("PrettyFormat output missing %q:\n%s", e, output)
		}
	}
}

func TestCsvString(t *testing.T) {
	got, err := CsvString(sampleResult("Late payers"))
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	expected := strings.Join([]string{
		"Month,Original Cash Flow,Modified Cash Flow,Difference",
		"Jan,1000.00,650.00,-350.00",
		"Feb,1000.00,1329.00,329.00",
		"Mar,1000.00,1000.00,0.00",
		"",
		"Impact Summary",
		"Revenue Impact,-21",
		"Expense Impact,5",
		"Cash Flow Impact,-21",
		"Profit Impact,-26",
		"Risk Level,Medium",
		"",
	}, "\n")

	if got != expected {
		t.Errorf("CsvString() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestCsvQuotesMonthLabels(t *testing.T) {
	result := sampleResult("Quoted")
	result.Original.Months = []string{"Jan, 2025"}
	result.Original.Values = []float64{1}
	result.Modified.Values = []float64{2}

	got, err := CsvString(result)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if !strings.Contains(got, "\"Jan, 2025\",1.00,2.00,1.00\n") {
		t.Errorf("month label not quoted:\n%s", got)
	}
}

func TestCsvFormatMultipleResults(t *testing.T) {
	output := captureStdout(t, func() {
		CsvFormat([]analysis.Result{sampleResult("First"), sampleResult("Second")})
	})

	if !strings.HasPrefix(output, "Scenario,First\nMonth,") {
		t.Errorf("CsvFormat should start with the first scenario block:\n%s", output)
	}
	if !strings.Contains(output, "Risk Level,Medium\n\nScenario,Second\n") {
		t.Errorf("CsvFormat blocks not separated by a blank line:\n%s", output)
	}
}

func TestWriteCSVSingleResultHasNoScenarioRow(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []analysis.Result{sampleResult("Only")}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if strings.Contains(buf.String(), "Scenario,") {
		t.Errorf("single result export should not carry a Scenario row:\n%s", buf.String())
	}
}
