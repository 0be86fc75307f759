package loan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/date"
	"github.com/shopspring/decimal"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithToday(func() date.Date { return start })}, opts...)
	return NewEngine(filepath.Join(t.TempDir(), "LoanDetails"), opts...)
}

// ages is an AgeSource backed by a map of account number to stored age.
type ages map[string]string

func (a ages) GetField(id string, field banking.Field) (string, error) {
	if field != banking.FieldAge {
		return "", banking.ErrUnknownField
	}
	v, ok := a[id]
	if !ok {
		return "", banking.ErrNotFound
	}
	return v, nil
}

func TestComputeScheduleWritesFile(t *testing.T) {
	e := newTestEngine(t)

	r, err := e.ComputeSchedule(40, 3, d("1000000"))
	if err != nil {
		t.Fatalf("ComputeSchedule() returned an unexpected error: %v", err)
	}
	if !r.Created {
		t.Error("Created = false for a new schedule")
	}
	if r.Tier.Category != Standard || !r.Rate.Equal(d("12")) {
		t.Errorf("tier = %s at %s%%, want standard at 12%%", r.Tier.Category, r.Rate)
	}
	if want := filepath.Join(e.dir, "3_years_1000000.csv"); r.Path != want {
		t.Errorf("Path = %q, want %q", r.Path, want)
	}

	b, err := os.ReadFile(r.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 37 {
		t.Fatalf("schedule file has %d lines, want 37", len(lines))
	}
	want := []string{
		"Month-Year,EMI,PrincipalAmount,InterestAmount,BalanceAmountToPay",
		"Oct-2026,33214.31,23214.31,10000.00,976785.69",
	}
	if diff := cmp.Diff(want, lines[:2]); diff != "" {
		t.Errorf("schedule file mismatch (-want +got):\n%s", diff)
	}
	if last := lines[36]; !strings.HasSuffix(last, ",32885.46,328.85,0.00") {
		t.Errorf("last row = %q, want it to end the loan", last)
	}
}

func TestComputeScheduleKeepsExistingFile(t *testing.T) {
	e := newTestEngine(t)
	path := e.SchedulePath(3, d("1000000"))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := "Month-Year,EMI,PrincipalAmount,InterestAmount,BalanceAmountToPay\nJan-2020,1.00,1.00,0.00,0.00\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	r, err := e.ComputeSchedule(40, 3, d("1000000"))
	if err != nil {
		t.Fatalf("ComputeSchedule() returned an unexpected error: %v", err)
	}
	if r.Created {
		t.Error("Created = true although the schedule file existed")
	}
	if len(r.Installments) != 36 || r.EMI.StringFixed(2) != "33214.31" {
		t.Errorf("ComputeSchedule() returned %d installments of %s, want a fresh schedule", len(r.Installments), r.EMI.StringFixed(2))
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != content {
		t.Errorf("existing schedule file was modified:\n%s", b)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("existing schedule file modification time = %v, want %v", info.ModTime(), old)
	}
}

func TestWriteNeverReplacesFile(t *testing.T) {
	e := newTestEngine(t)
	principal := decimal.NewFromInt(100000)
	s := Compute(principal, decimal.NewFromInt(12), 1, start)
	path := e.SchedulePath(1, principal)

	if err := e.write(path, s); err != nil {
		t.Fatalf("write() returned an unexpected error: %v", err)
	}
	if err := os.WriteFile(path, []byte("kept\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// a file created after the existence check must survive
	err := e.write(path, s)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("write() over an existing file returned %v, want fs.ErrExist", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "kept\n" {
		t.Errorf("existing schedule file was replaced:\n%s", b)
	}

	entries, err := os.ReadDir(e.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, en := range entries {
			names = append(names, en.Name())
		}
		t.Errorf("schedule directory holds %v, want only %s", names, filepath.Base(path))
	}
}

func TestComputeScheduleErrors(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		name      string
		age, term int
		principal string
		want      error
	}{
		{"small principal", 40, 3, "99999", ErrInvalidPrincipal},
		{"long term", 40, 31, "100000", ErrInvalidLoanTerm},
		{"zero term", 40, 0, "100000", ErrInvalidLoanTerm},
		{"minor", 17, 3, "100000", ErrAgeIneligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.ComputeSchedule(tt.age, tt.term, d(tt.principal)); !errors.Is(err, tt.want) {
				t.Errorf("ComputeSchedule() error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := os.Stat(e.dir); !os.IsNotExist(err) {
		t.Errorf("rejected applications created the schedule directory: %v", err)
	}
}

func TestLoadSchedule(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.ComputeSchedule(20, 6, d("250000"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := e.LoadSchedule(6, d("250000"))
	if err != nil {
		t.Fatalf("LoadSchedule() returned an unexpected error: %v", err)
	}
	want := make([]Installment, len(r.Installments))
	for i, in := range r.Installments {
		want[i] = Installment{
			Period:    in.Period,
			Label:     in.Label,
			EMI:       in.EMI.Round(2),
			Principal: in.Principal.Round(2),
			Interest:  in.Interest.Round(2),
			Balance:   in.Balance.Round(2),
		}
	}
	if diff := cmp.Diff(want, got, equateDecimals); diff != "" {
		t.Errorf("LoadSchedule() mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.LoadSchedule(7, d("250000")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadSchedule(absent) error = %v, want os.ErrNotExist", err)
	}
}

func TestDecodeScheduleErrors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":        "",
		"wrong header": "Month,EMI\n",
		"bad amount":   "Month-Year,EMI,PrincipalAmount,InterestAmount,BalanceAmountToPay\nOct-2026,x,1,1,1\n",
	} {
		if _, err := DecodeSchedule(strings.NewReader(input)); !errors.Is(err, ErrCorruptSchedule) {
			t.Errorf("DecodeSchedule(%s) error = %v, want ErrCorruptSchedule", name, err)
		}
	}
}

func TestApply(t *testing.T) {
	e := newTestEngine(t, WithAgeSource(ages{"2610000001": "20", "2610000002": "40", "2610000003": "65", "2610000004": "16"}))

	tests := []struct {
		name string
		app  Application
		rate string
		want error
	}{
		{"young", Application{AccountID: "2610000001", TermYears: 2, Principal: d("500000")}, "6", nil},
		{"young asking student loan", Application{AccountID: "2610000001", Category: Young, TermYears: 6, Principal: d("500000")}, "8", nil},
		{"standard within income", Application{AccountID: "2610000002", TermYears: 6, Principal: d("400000"), MonthlyIncome: d("50000")}, "14", nil},
		{"senior", Application{AccountID: "2610000003", TermYears: 1, Principal: d("1500000")}, "8", nil},
		{"standard over income", Application{AccountID: "2610000002", TermYears: 6, Principal: d("600000"), MonthlyIncome: d("50000")}, "", ErrExceedsSanction},
		{"young over ceiling", Application{AccountID: "2610000001", TermYears: 2, Principal: d("1000001")}, "", ErrExceedsSanction},
		{"standard asking student loan", Application{AccountID: "2610000002", Category: Young, TermYears: 2, Principal: d("100000")}, "", ErrAgeIneligible},
		{"minor", Application{AccountID: "2610000004", TermYears: 2, Principal: d("100000")}, "", ErrAgeIneligible},
		{"small principal", Application{AccountID: "2610000003", TermYears: 2, Principal: d("1000")}, "", ErrInvalidPrincipal},
		{"unknown account", Application{AccountID: "2610000009", TermYears: 2, Principal: d("100000")}, "", banking.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.Apply(tt.app)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && !r.Rate.Equal(d(tt.rate)) {
				t.Errorf("Apply() rate = %s, want %s", r.Rate, tt.rate)
			}
		})
	}
}

func TestApplyReadsAgeFromLedger(t *testing.T) {
	store, err := banking.Open(filepath.Join(t.TempDir(), "User_details.csv"))
	if err != nil {
		t.Fatal(err)
	}
	holder := banking.Account{ID: "2610123456", FirstName: "Meera", DateOfBirth: "1960-03-04", Age: 66, Phone: "9000000000", Balance: 1000}
	if err := store.Insert(holder); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, WithAgeSource(store))
	r, err := e.Apply(Application{AccountID: holder.ID, TermYears: 5, Principal: d("1200000")})
	if err != nil {
		t.Fatalf("Apply() returned an unexpected error: %v", err)
	}
	if r.Tier.Category != Senior || !r.Rate.Equal(d("10")) {
		t.Errorf("Apply() = %s at %s%%, want senior at 10%%", r.Tier.Category, r.Rate)
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Error("Apply() modified the ledger")
	}
}

func TestApplyWithoutAgeSource(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Apply(Application{AccountID: "2610000001", TermYears: 2, Principal: d("100000")}); err == nil {
		t.Error("Apply() without an age source succeeded")
	}
}
