package banking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// header returns the ledger header row.
func header() []string {
	h := make([]string, len(Columns))
	for i, c := range Columns {
		h[i] = string(c)
	}
	return h
}

// encodeAccount returns the ledger row for a.
func encodeAccount(a Account) []string {
	return []string{
		a.ID,
		a.FirstName,
		a.LastName,
		a.DateOfBirth,
		strconv.Itoa(a.Age),
		a.Gender,
		a.Profession,
		a.Phone,
		a.Email,
		strconv.FormatInt(a.Balance, 10),
	}
}

// decodeAccount parses a ledger row.
func decodeAccount(rec []string) (Account, error) {
	if len(rec) != len(Columns) {
		return Account{}, fmt.Errorf("%w: row has %d fields, want %d", ErrCorruptLedger, len(rec), len(Columns))
	}
	var a Account
	for i, c := range Columns {
		if err := a.Set(c, rec[i]); err != nil {
			return Account{}, fmt.Errorf("%w: account %q: %w", ErrCorruptLedger, rec[0], err)
		}
	}
	return a, nil
}

// newLedgerReader returns a csv.Reader positioned after a validated header row.
// An empty input is a valid, empty ledger and yields io.EOF.
func newLedgerReader(r io.Reader) (*csv.Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length is checked by decodeAccount to report a better error
	h, err := cr.Read()
	if err != nil {
		return nil, err
	}
	want := header()
	if len(h) != len(want) {
		return nil, fmt.Errorf("%w: header has %d columns, want %d", ErrCorruptLedger, len(h), len(want))
	}
	for i := range want {
		if h[i] != want[i] {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", ErrCorruptLedger, i+1, h[i], want[i])
		}
	}
	return cr, nil
}

// DecodeLedger reads a ledger CSV stream and yields its accounts in file order.
// Decoding stops at the first error, which is yielded with a zero Account.
func DecodeLedger(r io.Reader) iter.Seq2[Account, error] {
	return func(yield func(Account, error) bool) {
		cr, err := newLedgerReader(r)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(Account{}, err)
			return
		}
		for {
			rec, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Account{}, fmt.Errorf("%w: %w", ErrCorruptLedger, err))
				return
			}
			a, err := decodeAccount(rec)
			if !yield(a, err) || err != nil {
				return
			}
		}
	}
}

// EncodeLedger writes the header and one row per account to w.
func EncodeLedger(w io.Writer, accounts ...Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, a := range accounts {
		if err := cw.Write(encodeAccount(a)); err != nil {
			return fmt.Errorf("failed to write account %q: %w", a.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
