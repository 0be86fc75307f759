package loan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

// scheduleHeader is the header row of a schedule file.
var scheduleHeader = []string{"Month-Year", "EMI", "PrincipalAmount", "InterestAmount", "BalanceAmountToPay"}

// EncodeSchedule writes the installments of s as CSV, amounts rounded to two decimals.
func EncodeSchedule(w io.Writer, s Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return fmt.Errorf("failed to write schedule header: %w", err)
	}
	for _, in := range s.Installments {
		rec := []string{
			in.Label,
			in.EMI.StringFixed(2),
			in.Principal.StringFixed(2),
			in.Interest.StringFixed(2),
			in.Balance.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write period %d: %w", in.Period, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSchedule reads back the installments written by EncodeSchedule.
func DecodeSchedule(r io.Reader) ([]Installment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(scheduleHeader)
	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrCorruptSchedule)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSchedule, err)
	}
	if !slices.Equal(h, scheduleHeader) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrCorruptSchedule, h)
	}

	var rows []Installment
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSchedule, err)
		}
		in := Installment{Period: len(rows) + 1, Label: rec[0]}
		for i, dst := range []*decimal.Decimal{&in.EMI, &in.Principal, &in.Interest, &in.Balance} {
			v, err := decimal.NewFromString(rec[i+1])
			if err != nil {
				return nil, fmt.Errorf("%w: period %d, %s: %w", ErrCorruptSchedule, in.Period, scheduleHeader[i+1], err)
			}
			*dst = v
		}
		rows = append(rows, in)
	}
}
