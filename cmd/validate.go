package cmd

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/rupeshchamp/banking"
)

var fieldPatterns = map[banking.Field]*regexp.Regexp{
	banking.FieldFirstName:   regexp.MustCompile(`^[a-zA-Z\s]+$`),
	banking.FieldLastName:    regexp.MustCompile(`^[a-zA-Z\s]+$`),
	banking.FieldGender:      regexp.MustCompile(`^[a-zA-Z\s]+$`),
	banking.FieldProfession:  regexp.MustCompile(`^[a-zA-Z\s]+$`),
	banking.FieldDateOfBirth: regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`),
	banking.FieldPhoneNumber: regexp.MustCompile(`^\d{10}$`),
	banking.FieldEmail:       regexp.MustCompile(`^[a-zA-Z]+[a-zA-Z0-9]*@[a-zA-Z]+\.[a-zA-Z]{2,3}$`),
}

var fieldHints = map[banking.Field]string{
	banking.FieldFirstName:   "letters and spaces only",
	banking.FieldLastName:    "letters and spaces only",
	banking.FieldGender:      "letters and spaces only",
	banking.FieldProfession:  "letters and spaces only",
	banking.FieldDateOfBirth: "YYYY-MM-DD",
	banking.FieldPhoneNumber: "a 10-digit phone number",
	banking.FieldEmail:       "an address like name@example.com",
}

// validateField checks a user supplied value before it reaches the ledger.
func validateField(f banking.Field, v string) error {
	p, ok := fieldPatterns[f]
	if !ok || p.MatchString(v) {
		return nil
	}
	return fmt.Errorf("invalid %s %q, want %s", f, v, fieldHints[f])
}

// validateProfile checks every field of p and reports all the invalid ones.
func validateProfile(p banking.Profile) error {
	return errors.Join(
		validateField(banking.FieldFirstName, p.FirstName),
		validateField(banking.FieldLastName, p.LastName),
		validateField(banking.FieldDateOfBirth, p.DateOfBirth),
		validateField(banking.FieldGender, p.Gender),
		validateField(banking.FieldProfession, p.Profession),
		validateField(banking.FieldPhoneNumber, p.Phone),
		validateField(banking.FieldEmail, p.Email),
	)
}
