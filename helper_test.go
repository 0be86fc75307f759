package banking

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rupeshchamp/banking/date"
)

// testNow is the fixed clock of test stores: account numbers start with "2610".
var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

// newTestStore returns a Store on a ledger file inside a fresh temporary directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "UserDetails", "User_details.csv"), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	return s
}

// newTestBank returns a Bank with default limits on a fresh store, with today fixed to testNow.
func newTestBank(t *testing.T) *Bank {
	t.Helper()
	b := NewBank(newTestStore(t), DefaultLimits())
	b.today = func() date.Date { return date.Of(testNow) }
	return b
}

// sequence returns an intN function yielding values in order, then repeating the last one.
func sequence(values ...int) func(int) int {
	i := 0
	return func(int) int {
		v := values[min(i, len(values)-1)]
		i++
		return v
	}
}

func alice() Account {
	return Account{
		ID:          "2609123456",
		FirstName:   "Alice",
		LastName:    "Rao",
		DateOfBirth: "1990-05-17",
		Age:         36,
		Gender:      "Female",
		Profession:  "Engineer",
		Phone:       "9876543210",
		Email:       "alice@example.com",
		Balance:     5000,
	}
}

func bob() Account {
	return Account{
		ID:          "2610654321",
		FirstName:   "Bob",
		LastName:    "Menon",
		DateOfBirth: "2006-01-02",
		Age:         20,
		Gender:      "Male",
		Profession:  "Student",
		Phone:       "9123456780",
		Email:       "bob@example.com",
		Balance:     1500,
	}
}

func mustInsert(t *testing.T, s *Store, accounts ...Account) {
	t.Helper()
	for _, a := range accounts {
		if err := s.Insert(a); err != nil {
			t.Fatalf("Insert(%s) returned an unexpected error: %v", a.ID, err)
		}
	}
}
