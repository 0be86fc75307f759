package loan

import (
	"github.com/rupeshchamp/banking/date"
	"github.com/shopspring/decimal"
)

// Installment is one monthly payment of a schedule.
type Installment struct {
	Period    int             `json:"period"` // 1-based
	Label     string          `json:"label"`  // Jan-2006
	EMI       decimal.Decimal `json:"emi"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"` // principal still owed after this payment
}

// Schedule is the full repayment plan of a loan.
// Amounts are kept at full precision and rounded only when written or rendered.
type Schedule struct {
	TermYears    int             `json:"termYears"`
	Principal    decimal.Decimal `json:"principal"`
	Rate         decimal.Decimal `json:"rate"` // annual, in percent
	EMI          decimal.Decimal `json:"emi"`
	Installments []Installment   `json:"installments"`
}

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Compute returns the reducing-balance schedule of a loan taken on start.
//
// With r the monthly rate and n the number of months, the installment is
// E = P·r·(1+r)^n / ((1+r)^n − 1). Each month the interest is charged on the
// balance still owed and the rest of E repays principal.
func Compute(principal, annualRate decimal.Decimal, termYears int, start date.Date) Schedule {
	n := termYears * 12
	r := annualRate.Div(monthsPerYear).Div(hundred)

	var emi decimal.Decimal
	if r.IsZero() {
		emi = principal.Div(decimal.NewFromInt(int64(n)))
	} else {
		g, err := r.Add(decimal.NewFromInt(1)).PowInt32(int32(n))
		if err != nil {
			// only 0**0, excluded by a positive rate
			panic(err)
		}
		emi = principal.Mul(r).Mul(g).Div(g.Sub(decimal.NewFromInt(1)))
	}

	s := Schedule{
		TermYears:    termYears,
		Principal:    principal,
		Rate:         annualRate,
		EMI:          emi,
		Installments: make([]Installment, 0, n),
	}
	balance := principal
	for i, day := range date.Periods(start, n) {
		interest := balance.Mul(r)
		paid := emi.Sub(interest)
		balance = balance.Sub(paid)
		s.Installments = append(s.Installments, Installment{
			Period:    i,
			Label:     day.Label(),
			EMI:       emi,
			Principal: paid,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return s
}

// Months returns the number of installments.
func (s Schedule) Months() int { return s.TermYears * 12 }

// TotalPayable returns the sum of all installments.
func (s Schedule) TotalPayable() decimal.Decimal {
	return s.EMI.Mul(decimal.NewFromInt(int64(s.Months())))
}

// TotalInterest returns the cost of the loan.
func (s Schedule) TotalInterest() decimal.Decimal {
	return s.TotalPayable().Sub(s.Principal)
}
