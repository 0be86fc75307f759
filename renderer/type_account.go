package renderer

import (
	"github.com/rupeshchamp/banking"
)

// Account is the view of one ledger account, with amounts already formatted.
type Account struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Profession  string `json:"profession,omitempty"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Balance     string `json:"balance"`
}

// Accounts is the view of the whole ledger.
type Accounts struct {
	Count    int        `json:"count"`
	Total    string     `json:"total"`
	Accounts []*Account `json:"accounts"`
}

// NewAccount creates the view of a, its balance formatted in currency.
func NewAccount(a banking.Account, currency string) *Account {
	return &Account{
		Number:      a.ID,
		Name:        a.Name(),
		DateOfBirth: a.DateOfBirth,
		Age:         a.Age,
		Gender:      a.Gender,
		Profession:  a.Profession,
		Phone:       a.Phone,
		Email:       a.Email,
		Balance:     banking.M(a.Balance, currency).String(),
	}
}

// NewAccounts creates the view of a list of accounts and their total balance.
func NewAccounts(list []banking.Account, currency string) *Accounts {
	v := &Accounts{Accounts: make([]*Account, 0, len(list))}
	var total int64
	for _, a := range list {
		v.Accounts = append(v.Accounts, NewAccount(a, currency))
		total += a.Balance
	}
	v.Count = len(list)
	v.Total = banking.M(total, currency).String()
	return v
}
