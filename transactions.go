package banking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rupeshchamp/banking/date"
	"github.com/rupeshchamp/banking/logger"
)

// Limits are the amounts and age an account operation must respect.
type Limits struct {
	MinAge            int   `toml:"min_age"`
	MinOpeningDeposit int64 `toml:"min_opening_deposit"`
	MinDeposit        int64 `toml:"min_deposit"`
	MinWithdrawal     int64 `toml:"min_withdrawal"`
	MinBalance        int64 `toml:"min_balance"` // floor after any withdrawal
}

// DefaultLimits returns the limits of a standard savings account.
func DefaultLimits() Limits {
	return Limits{
		MinAge:            18,
		MinOpeningDeposit: 500,
		MinDeposit:        100,
		MinWithdrawal:     100,
		MinBalance:        1000,
	}
}

func (l Limits) validate() error {
	var errs error
	if l.MinAge < 0 {
		errs = errors.Join(errs, fmt.Errorf("min_age must not be negative"))
	}
	for name, v := range map[string]int64{
		"min_opening_deposit": l.MinOpeningDeposit,
		"min_deposit":         l.MinDeposit,
		"min_withdrawal":      l.MinWithdrawal,
		"min_balance":         l.MinBalance,
	} {
		if v < 0 {
			errs = errors.Join(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	return errs
}

// editableFields are the profile fields an account holder may change.
// The account number, the age and the balance are not among them.
var editableFields = map[Field]bool{
	FieldFirstName:   true,
	FieldLastName:    true,
	FieldDateOfBirth: true,
	FieldGender:      true,
	FieldProfession:  true,
	FieldPhoneNumber: true,
	FieldEmail:       true,
}

// Profile is what an applicant provides to open an account.
// Values are expected to be validated by the caller.
type Profile struct {
	FirstName   string
	LastName    string
	DateOfBirth string // YYYY-MM-DD
	Gender      string
	Profession  string
	Phone       string
	Email       string
}

// Bank performs account operations on top of a Store.
// Every balance or profile change is a single Store.AtomicUpdate.
type Bank struct {
	store  *Store
	limits Limits
	today  func() date.Date
}

// NewBank returns a Bank operating on store under limits.
func NewBank(store *Store, limits Limits) *Bank {
	return &Bank{store: store, limits: limits, today: date.Today}
}

// Store returns the underlying record store.
func (b *Bank) Store() *Store { return b.store }

// Limits returns the limits the bank enforces.
func (b *Bank) Limits() Limits { return b.limits }

// Open creates an account for p with an opening deposit.
// The age is computed once from the date of birth and stored.
func (b *Bank) Open(p Profile, deposit int64) (Account, error) {
	born, err := date.Parse(p.DateOfBirth)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	age := date.Age(born, b.today())
	if age < b.limits.MinAge {
		return Account{}, fmt.Errorf("%w: %d years old, minimum is %d", ErrUnderage, age, b.limits.MinAge)
	}
	if deposit < b.limits.MinOpeningDeposit {
		return Account{}, fmt.Errorf("%w: opening deposit %d, minimum is %d", ErrBelowMinimum, deposit, b.limits.MinOpeningDeposit)
	}
	if _, err := b.store.LookupBySecondary(p.Phone); err == nil {
		return Account{}, fmt.Errorf("%w: %s", ErrDuplicatePhone, p.Phone)
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	id, err := b.store.GenerateUniqueKey()
	if err != nil {
		return Account{}, err
	}
	a := Account{
		ID:          id,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: born.String(),
		Age:         age,
		Gender:      p.Gender,
		Profession:  p.Profession,
		Phone:       p.Phone,
		Email:       p.Email,
		Balance:     deposit,
	}
	if err := b.store.Insert(a); err != nil {
		return Account{}, err
	}
	logger.Info("account opened", logger.Fields{"account": id, "phone": p.Phone})
	return a, nil
}

// Resolve returns the account number registered with phone.
func (b *Bank) Resolve(phone string) (string, error) {
	return b.store.LookupBySecondary(strings.TrimSpace(phone))
}

// Balance returns the current balance of account id.
func (b *Bank) Balance(id string) (int64, error) {
	v, err := b.store.GetField(id, FieldAmount)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// Deposit adds amount to account id and returns the new balance.
func (b *Bank) Deposit(id string, amount int64) (int64, error) {
	if amount < b.limits.MinDeposit {
		return 0, fmt.Errorf("%w: deposit %d, minimum is %d", ErrBelowMinimum, amount, b.limits.MinDeposit)
	}
	balance, err := b.Balance(id)
	if err != nil {
		return 0, err
	}
	return b.setBalance(id, balance+amount, "deposit", amount)
}

// Withdraw takes amount from account id and returns the new balance.
// The balance left must not fall below the minimum balance.
func (b *Bank) Withdraw(id string, amount int64) (int64, error) {
	if amount < b.limits.MinWithdrawal {
		return 0, fmt.Errorf("%w: withdrawal %d, minimum is %d", ErrBelowMinimum, amount, b.limits.MinWithdrawal)
	}
	balance, err := b.Balance(id)
	if err != nil {
		return 0, err
	}
	left := balance - amount
	if left < 0 || left < b.limits.MinBalance {
		return balance, fmt.Errorf("%w: balance %d, withdrawal %d, minimum balance is %d", ErrInsufficientBalance, balance, amount, b.limits.MinBalance)
	}
	return b.setBalance(id, left, "withdraw", amount)
}

func (b *Bank) setBalance(id string, balance int64, op string, amount int64) (int64, error) {
	if err := b.store.AtomicUpdate(id, FieldAmount, strconv.FormatInt(balance, 10)); err != nil {
		logger.Error("balance update failed", err, logger.Fields{"account": id, "operation": op})
		return 0, err
	}
	logger.Info("balance updated", logger.Fields{"account": id, "operation": op, "amount": amount, "balance": balance})
	return balance, nil
}

// Edit changes one profile field of account id.
// Changing the date of birth does not recompute the stored age.
func (b *Bank) Edit(id string, field Field, value string) error {
	if !editableFields[field] {
		return fmt.Errorf("%w: %s is not editable", ErrImmutableField, field)
	}
	value = strings.TrimSpace(value)
	switch field {
	case FieldDateOfBirth:
		born, err := date.Parse(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		value = born.String()
	case FieldPhoneNumber:
		owner, err := b.store.LookupBySecondary(value)
		switch {
		case err == nil && owner != id:
			return fmt.Errorf("%w: used by account %s", ErrDuplicatePhone, owner)
		case err != nil && !errors.Is(err, ErrNotFound):
			return err
		}
	}
	if err := b.store.AtomicUpdate(id, field, value); err != nil {
		return err
	}
	logger.Info("account edited", logger.Fields{"account": id, "field": string(field)})
	return nil
}
