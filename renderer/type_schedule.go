package renderer

import (
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/loan"
	"github.com/shopspring/decimal"
)

// Schedule is the view of a computed loan.
type Schedule struct {
	Category      string        `json:"category"`
	TermYears     int           `json:"termYears"`
	Principal     string        `json:"principal"`
	Rate          string        `json:"rate"`
	EMI           string        `json:"emi"`
	TotalInterest string        `json:"totalInterest"`
	TotalPayable  string        `json:"totalPayable"`
	Path          string        `json:"path"`
	Created       bool          `json:"created"`
	Rows          []ScheduleRow `json:"rows"`
}

// ScheduleRow is one monthly installment.
type ScheduleRow struct {
	Label     string `json:"label"`
	EMI       string `json:"emi"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Balance   string `json:"balance"`
}

// NewSchedule creates the view of a loan report, amounts formatted in currency.
func NewSchedule(r loan.Report, currency string) *Schedule {
	m := money(currency)
	s := NewScheduleTable(r.TermYears, r.Principal, r.Installments, currency)
	s.Category = r.Tier.Category.String()
	s.Rate = r.Rate.String()
	s.EMI = m(r.EMI)
	s.TotalInterest = m(r.TotalInterest())
	s.TotalPayable = m(r.TotalPayable())
	s.Path = r.Path
	s.Created = r.Created
	return s
}

// NewScheduleTable creates the view of installments read back from a schedule file.
// Only the loan key and the rows are set.
func NewScheduleTable(termYears int, principal decimal.Decimal, rows []loan.Installment, currency string) *Schedule {
	m := money(currency)
	s := &Schedule{
		TermYears: termYears,
		Principal: m(principal),
		Rows:      make([]ScheduleRow, 0, len(rows)),
	}
	for _, in := range rows {
		s.Rows = append(s.Rows, ScheduleRow{
			Label:     in.Label,
			EMI:       m(in.EMI),
			Principal: m(in.Principal),
			Interest:  m(in.Interest),
			Balance:   m(in.Balance),
		})
	}
	return s
}

func money(currency string) func(decimal.Decimal) string {
	return func(d decimal.Decimal) string { return banking.M(d, currency).String() }
}
