package renderer

import (
	"embed"
	"encoding/json"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/date"
	"github.com/rupeshchamp/banking/loan"
	"github.com/shopspring/decimal"
)

//go:embed testdata/*.json testdata/*.md
var testdataFS embed.FS

var fixTemplates = flag.Bool("fix-templates", false, "if true, update failing golden .md files with the received output")

func TestFixTemplatesIsOff(t *testing.T) {
	if *fixTemplates {
		t.Fatal("-fix-templates is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

func TestTemplates(t *testing.T) {
	testCases := []struct {
		name       string
		structFile string
		goldenFile string
		dataType   any
	}{
		{"account", "testdata/account.json", "testdata/account.md", &Account{}},
		{"accounts", "testdata/accounts.json", "testdata/accounts.md", &Accounts{}},
		{"schedule_summary", "testdata/schedule.json", "testdata/schedule_summary.md", &Schedule{}},
		{"schedule_table", "testdata/schedule.json", "testdata/schedule_table.md", &Schedule{}},
	}

	// every template but the ones only assembling partials must be tested
	tested := map[string]bool{"schedule.md": true}
	for _, tc := range testCases {
		tested[tc.name+".md"] = true
	}
	files, err := fs.Glob(templates, "*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if !tested[f] {
			t.Errorf("untested template found: %s. Please add a test case to TestTemplates.", f)
		}
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			jsonData, err := testdataFS.ReadFile(tc.structFile)
			if err != nil {
				t.Fatalf("failed to read struct file %q: %v", tc.structFile, err)
			}
			if err := json.Unmarshal(jsonData, tc.dataType); err != nil {
				t.Fatalf("failed to unmarshal struct data from %q: %v", tc.structFile, err)
			}

			content, err := fs.ReadFile(templates, tc.name+".md")
			if err != nil {
				t.Fatalf("failed to read template: %v", err)
			}
			tmpl, err := template.New(tc.name).Parse(string(content))
			if err != nil {
				t.Fatalf("failed to parse template: %v", err)
			}
			var b strings.Builder
			if err := tmpl.Execute(&b, tc.dataType); err != nil {
				t.Fatalf("failed to execute template: %v", err)
			}

			golden, err := testdataFS.ReadFile(tc.goldenFile)
			if err != nil {
				t.Fatalf("failed to read golden file %q: %v", tc.goldenFile, err)
			}
			got, want := b.String(), string(golden)
			if got == want {
				return
			}
			if *fixTemplates {
				if err := os.WriteFile(filepath.FromSlash(tc.goldenFile), []byte(got), 0644); err != nil {
					t.Fatalf("failed to write updated golden file %q: %v", tc.goldenFile, err)
				}
				t.Logf("updated golden file %s", tc.goldenFile)
				return
			}
			t.Errorf("output mismatch for %s (-want +got):\n%s", tc.name, cmp.Diff(want, got))
		})
	}
}

func TestRenderSchedule(t *testing.T) {
	start := date.New(2026, time.October, 19)
	s := loan.Compute(decimal.NewFromInt(100000), decimal.NewFromInt(12), 1, start)
	r := loan.Report{Schedule: s, Tier: loan.Tier{Category: loan.Standard, Rate: s.Rate}, Path: "1_years_100000.csv", Created: true}

	md := RenderSchedule(NewSchedule(r, "XYZ"))
	for _, want := range []string{
		"# 1 years loan of 100000.00 XYZ",
		"| Category | standard |",
		"| Annual rate | 12% |",
		"| EMI | 8884.88 XYZ |",
		"| Oct-2026 | 8884.88 XYZ | 7884.88 XYZ | 1000.00 XYZ | 92115.12 XYZ |",
		"## Repayments",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderSchedule() does not contain %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "already exists") {
		t.Errorf("RenderSchedule() of a new schedule mentions an existing file:\n%s", md)
	}
	if rows := strings.Count(md, "XYZ |\n"); rows != 12+3 {
		t.Errorf("RenderSchedule() has %d amount rows, want 15", rows)
	}
}

func TestRenderAccounts(t *testing.T) {
	list := []banking.Account{
		{ID: "2609123456", FirstName: "Alice", LastName: "Rao", Phone: "9876543210", Balance: 5000},
		{ID: "2610654321", FirstName: "Bob", Phone: "9123456780", Balance: 1500},
	}
	md := RenderAccounts(NewAccounts(list, "XYZ"))
	for _, want := range []string{
		"| 2609123456 | Alice Rao | 9876543210 | 5000.00 XYZ |",
		"| 2610654321 | Bob | 9123456780 | 1500.00 XYZ |",
		"2 accounts, total balance 6500.00 XYZ",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderAccounts() does not contain %q:\n%s", want, md)
		}
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(RenderAccount(&Account{Number: "2610123456", Name: "Alice Rao", Balance: "5000.00 XYZ"}))
	if err != nil {
		t.Fatalf("HTML() returned an unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Alice Rao</h1>", "<table>", "2610123456</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() does not contain %q:\n%s", want, got)
		}
	}

	page, err := HTMLPage("Loan <1>", "# Title\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page, "<title>Loan &lt;1&gt;</title>") || !strings.Contains(page, "<h1>Title</h1>") {
		t.Errorf("HTMLPage() = %s", page)
	}
}

func TestRenderScheduleTable(t *testing.T) {
	rows := []loan.Installment{
		{Period: 1, Label: "Oct-2026", EMI: decimal.RequireFromString("8884.88"), Principal: decimal.RequireFromString("7884.88"), Interest: decimal.NewFromInt(1000), Balance: decimal.RequireFromString("92115.12")},
	}
	md := RenderScheduleTable(NewScheduleTable(1, decimal.NewFromInt(100000), rows, "XYZ"))
	want := "## Repayments\n\n" +
		"| Month-Year | EMI | Principal | Interest | Balance |\n" +
		"|:---|---:|---:|---:|---:|\n" +
		"| Oct-2026 | 8884.88 XYZ | 7884.88 XYZ | 1000.00 XYZ | 92115.12 XYZ |\n"
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("RenderScheduleTable() mismatch (-want +got):\n%s", diff)
	}
}
