package banking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Field names a ledger column.
type Field string

const (
	FieldAccountNumber Field = "ACCOUNTNUMBER"
	FieldFirstName     Field = "FIRSTNAME"
	FieldLastName      Field = "LASTNAME"
	FieldDateOfBirth   Field = "DATE_OF_BIRTH"
	FieldAge           Field = "AGE"
	FieldGender        Field = "GENDER"
	FieldProfession    Field = "PROFESSION"
	FieldPhoneNumber   Field = "PHONENUMBER"
	FieldEmail         Field = "EMAIL"
	FieldAmount        Field = "AMOUNT"
)

// Columns is the ledger header. Rows are positional, so the order is part of the file format.
var Columns = []Field{
	FieldAccountNumber,
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldAge,
	FieldGender,
	FieldProfession,
	FieldPhoneNumber,
	FieldEmail,
	FieldAmount,
}

// column returns the position of f in a ledger row.
func column(f Field) (int, bool) {
	for i, c := range Columns {
		if c == f {
			return i, true
		}
	}
	return -1, false
}

// ParseField resolves a column name, case-insensitively.
// Unknown names are reported with the closest known column as a hint.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := column(f); ok {
		return f, nil
	}
	if hint := suggestField(f); hint != "" {
		return "", fmt.Errorf("%w %q, did you mean %s?", ErrUnknownField, name, hint)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownField, name)
}

// suggestField returns the column a mistyped name most likely meant, or "".
// A column containing the name wins over edit distance ("PHONE" -> PHONENUMBER).
func suggestField(f Field) Field {
	if len(f) >= 3 {
		for _, c := range Columns {
			if strings.Contains(string(c), string(f)) {
				return c
			}
		}
	}
	best, bestDist := Field(""), -1
	for _, c := range Columns {
		d := levenshtein.ComputeDistance(string(f), string(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist >= 0 && bestDist <= len(best)/2 {
		return best
	}
	return ""
}

// Account is one row of the ledger.
type Account struct {
	ID          string `json:"accountNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Profession  string `json:"profession"`
	Phone       string `json:"phoneNumber"`
	Email       string `json:"email"`
	Balance     int64  `json:"amount"` // whole currency units
}

// Name returns the holder's full name.
func (a Account) Name() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Get returns the value of field f as it is stored in the ledger.
func (a Account) Get(f Field) (string, error) {
	switch f {
	case FieldAccountNumber:
		return a.ID, nil
	case FieldFirstName:
		return a.FirstName, nil
	case FieldLastName:
		return a.LastName, nil
	case FieldDateOfBirth:
		return a.DateOfBirth, nil
	case FieldAge:
		return strconv.Itoa(a.Age), nil
	case FieldGender:
		return a.Gender, nil
	case FieldProfession:
		return a.Profession, nil
	case FieldPhoneNumber:
		return a.Phone, nil
	case FieldEmail:
		return a.Email, nil
	case FieldAmount:
		return strconv.FormatInt(a.Balance, 10), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownField, f)
	}
}

// Set assigns the ledger representation v to field f.
func (a *Account) Set(f Field, v string) error {
	if err := checkValue(f, v); err != nil {
		return err
	}
	switch f {
	case FieldAccountNumber:
		a.ID = v
	case FieldFirstName:
		a.FirstName = v
	case FieldLastName:
		a.LastName = v
	case FieldDateOfBirth:
		a.DateOfBirth = v
	case FieldAge:
		a.Age, _ = strconv.Atoi(v)
	case FieldGender:
		a.Gender = v
	case FieldProfession:
		a.Profession = v
	case FieldPhoneNumber:
		a.Phone = v
	case FieldEmail:
		a.Email = v
	case FieldAmount:
		a.Balance, _ = strconv.ParseInt(v, 10, 64)
	}
	return nil
}

// checkValue rejects values that would make a row undecodable.
func checkValue(f Field, v string) error {
	switch f {
	case FieldAge:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidValue, f, v)
		}
	case FieldAmount:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidValue, f, v)
		}
	case FieldAccountNumber, FieldPhoneNumber:
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidValue, f)
		}
	default:
		if _, ok := column(f); !ok {
			return fmt.Errorf("%w %q", ErrUnknownField, f)
		}
	}
	return nil
}
