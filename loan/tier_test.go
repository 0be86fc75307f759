package loan

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSelectTier(t *testing.T) {
	tests := []struct {
		age, term int
		category  Category
		rate      int64
	}{
		{20, 2, Young, 6},
		{20, 6, Young, 8},
		{18, 4, Young, 6},
		{21, 5, Young, 8},
		{22, 4, Standard, 12},
		{40, 6, Standard, 14},
		{57, 30, Standard, 14},
		{58, 4, Senior, 8},
		{60, 1, Senior, 8},
		{75, 5, Senior, 10},
	}
	for _, tt := range tests {
		got, err := SelectTier(tt.age, tt.term)
		if err != nil {
			t.Errorf("SelectTier(%d, %d) returned an unexpected error: %v", tt.age, tt.term, err)
			continue
		}
		if got.Category != tt.category || !got.Rate.Equal(decimal.NewFromInt(tt.rate)) {
			t.Errorf("SelectTier(%d, %d) = %s at %s%%, want %s at %d%%", tt.age, tt.term, got.Category, got.Rate, tt.category, tt.rate)
		}
		again, _ := SelectTier(tt.age, tt.term)
		if !again.Rate.Equal(got.Rate) || again.Category != got.Category {
			t.Errorf("SelectTier(%d, %d) is not deterministic: %v then %v", tt.age, tt.term, got, again)
		}
	}
}

func TestSelectTierErrors(t *testing.T) {
	tests := []struct {
		age, term int
		want      error
	}{
		{17, 3, ErrAgeIneligible},
		{30, 0, ErrInvalidLoanTerm},
		{30, 31, ErrInvalidLoanTerm},
		{30, -2, ErrInvalidLoanTerm},
	}
	for _, tt := range tests {
		if _, err := SelectTier(tt.age, tt.term); !errors.Is(err, tt.want) {
			t.Errorf("SelectTier(%d, %d) error = %v, want %v", tt.age, tt.term, err, tt.want)
		}
	}
}

func TestSanction(t *testing.T) {
	tests := []struct {
		category Category
		income   int64
		want     int64
	}{
		{Young, 0, 1000000},
		{Senior, 90000, 1500000},
		{Standard, 50000, 500000},
		{Standard, 250000, 2500000},
		{Standard, 1000000, 2500000},
	}
	for _, tt := range tests {
		got := Sanction(tt.category, decimal.NewFromInt(tt.income))
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("Sanction(%s, %d) = %s, want %d", tt.category, tt.income, got, tt.want)
		}
	}
}

func TestValidatePrincipal(t *testing.T) {
	tests := []struct {
		principal string
		valid     bool
	}{
		{"100000", true},
		{"2500000", true},
		{"99999", false},
		{"0", false},
		{"-150000", false},
		{"150000.50", false},
	}
	for _, tt := range tests {
		err := ValidatePrincipal(decimal.RequireFromString(tt.principal))
		if tt.valid && err != nil {
			t.Errorf("ValidatePrincipal(%s) returned an unexpected error: %v", tt.principal, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidPrincipal) {
			t.Errorf("ValidatePrincipal(%s) error = %v, want ErrInvalidPrincipal", tt.principal, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for name, want := range map[string]Category{"student": Young, "Young": Young, "general": Standard, " senior ": Senior} {
		if got, err := ParseCategory(name); err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %v, %v, want %v", name, got, err, want)
		}
	}
	if _, err := ParseCategory("gold"); err == nil {
		t.Error("ParseCategory(gold) succeeded")
	}
}
