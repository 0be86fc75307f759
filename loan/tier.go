package loan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the applicant bracket a loan product is offered to.
type Category int

const (
	Young    Category = iota + 1 // 18 to 21, the student loan
	Standard                     // 22 to 57
	Senior                       // 58 and over
)

const (
	MinAge         = 18
	StandardMinAge = 22
	SeniorMinAge   = 58

	MinTermYears  = 1
	MaxTermYears  = 30
	longTermYears = 5 // terms of this length and above get the long term rate
)

// MinPrincipal is the smallest loan the bank grants.
var MinPrincipal = decimal.NewFromInt(100000)

var categoryNames = map[Category]string{
	Young:    "young",
	Standard: "standard",
	Senior:   "senior",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory reads a category name. "student" and "general" are accepted
// as aliases of young and standard.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "young", "student":
		return Young, nil
	case "standard", "general":
		return Standard, nil
	case "senior":
		return Senior, nil
	}
	return 0, fmt.Errorf("unknown loan category %q, want young, standard or senior", s)
}

// CategoryOf returns the bracket of an applicant of this age.
func CategoryOf(age int) (Category, error) {
	switch {
	case age < MinAge:
		return 0, fmt.Errorf("%w: %d years old, minimum is %d", ErrAgeIneligible, age, MinAge)
	case age < StandardMinAge:
		return Young, nil
	case age < SeniorMinAge:
		return Standard, nil
	default:
		return Senior, nil
	}
}

// Tier is the pricing of a loan for one (category, term bracket) pair.
type Tier struct {
	Category Category
	LongTerm bool
	Rate     decimal.Decimal // annual, in percent
}

// rates are annual percentages, short term then long term.
var rates = map[Category][2]int64{
	Young:    {6, 8},
	Standard: {12, 14},
	Senior:   {8, 10},
}

// SelectTier returns the tier of a loan of termYears to an applicant of age.
func SelectTier(age, termYears int) (Tier, error) {
	if err := ValidateTerm(termYears); err != nil {
		return Tier{}, err
	}
	c, err := CategoryOf(age)
	if err != nil {
		return Tier{}, err
	}
	long := termYears >= longTermYears
	r := rates[c][0]
	if long {
		r = rates[c][1]
	}
	return Tier{Category: c, LongTerm: long, Rate: decimal.NewFromInt(r)}, nil
}

// Sanction returns the largest principal granted in category c.
// Only the standard category depends on income: ten months of it, capped.
func Sanction(c Category, monthlyIncome decimal.Decimal) decimal.Decimal {
	switch c {
	case Young:
		return decimal.NewFromInt(1000000)
	case Senior:
		return decimal.NewFromInt(1500000)
	case Standard:
		return decimal.Min(decimal.NewFromInt(2500000), monthlyIncome.Mul(decimal.NewFromInt(10)))
	}
	return decimal.Zero
}

// ValidateTerm checks that a term is between 1 and 30 years.
func ValidateTerm(termYears int) error {
	if termYears < MinTermYears || termYears > MaxTermYears {
		return fmt.Errorf("%w: got %d", ErrInvalidLoanTerm, termYears)
	}
	return nil
}

// ValidatePrincipal checks that p is a whole amount of at least MinPrincipal.
func ValidatePrincipal(p decimal.Decimal) error {
	if p.LessThan(MinPrincipal) || !p.Equal(p.Truncate(0)) {
		return fmt.Errorf("%w: got %s", ErrInvalidPrincipal, p)
	}
	return nil
}
