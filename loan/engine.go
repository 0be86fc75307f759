package loan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/date"
	"github.com/rupeshchamp/banking/logger"
	"github.com/shopspring/decimal"
)

// AgeSource gives read access to the stored age of an account holder.
// *banking.Store implements it.
type AgeSource interface {
	GetField(id string, field banking.Field) (string, error)
}

// Engine prices loans and keeps their schedules as files in a directory.
// It never writes to the account ledger.
type Engine struct {
	dir   string
	ages  AgeSource
	today func() date.Date
}

// Option configures an Engine.
type Option func(*Engine)

// WithAgeSource sets where Apply reads the applicant's age.
func WithAgeSource(src AgeSource) Option {
	return func(e *Engine) { e.ages = src }
}

// WithToday sets the clock used for the first period label.
func WithToday(today func() date.Date) Option {
	return func(e *Engine) { e.today = today }
}

// NewEngine returns an Engine writing schedule files into dir.
func NewEngine(dir string, opts ...Option) *Engine {
	e := &Engine{dir: dir, today: date.Today}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report is the result of a schedule computation.
type Report struct {
	Schedule
	Tier Tier
	Path string // schedule file
	// Created is false when a file for the same term and principal already
	// existed: it was left untouched and the caller may ask for another loan.
	Created bool
}

// Application is a loan request by an account holder.
type Application struct {
	AccountID     string
	Category      Category // requested product, zero to use the applicant's bracket
	TermYears     int
	Principal     decimal.Decimal
	MonthlyIncome decimal.Decimal // only used by the standard category
}

// SchedulePath returns the file holding the schedule for this term and principal.
func (e *Engine) SchedulePath(termYears int, principal decimal.Decimal) string {
	return filepath.Join(e.dir, fmt.Sprintf("%d_years_%s.csv", termYears, principal.String()))
}

// ComputeSchedule prices a loan for an applicant of age and computes its schedule.
//
// The schedule is saved unless a file for the same term and principal already
// exists; in that case the file is kept as is and the fresh schedule is
// returned with Created false.
func (e *Engine) ComputeSchedule(age, termYears int, principal decimal.Decimal) (Report, error) {
	if err := ValidatePrincipal(principal); err != nil {
		return Report{}, err
	}
	tier, err := SelectTier(age, termYears)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Schedule: Compute(principal, tier.Rate, termYears, e.today()),
		Tier:     tier,
		Path:     e.SchedulePath(termYears, principal),
	}
	switch _, err := os.Stat(r.Path); {
	case err == nil:
		logger.Warn("schedule file already exists, left unchanged", logger.Fields{"path": r.Path})
		return r, nil
	case !errors.Is(err, fs.ErrNotExist):
		return Report{}, fmt.Errorf("could not check schedule file: %w", err)
	}

	err = e.write(r.Path, r.Schedule)
	if errors.Is(err, fs.ErrExist) {
		logger.Warn("schedule file appeared while computing, left unchanged", logger.Fields{"path": r.Path})
		return r, nil
	}
	if err != nil {
		return Report{}, err
	}
	r.Created = true
	logger.Info("schedule saved", logger.Fields{
		"path":     r.Path,
		"category": tier.Category.String(),
		"rate":     tier.Rate.String(),
		"emi":      r.EMI.StringFixed(2),
	})
	return r, nil
}

// write saves s at path through a temporary file, so that a reader never sees
// a partial schedule. It never replaces an existing file: it fails with an
// error matching fs.ErrExist instead.
func (e *Engine) write(path string, s Schedule) (err error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("could not create schedule directory: %w", err)
	}
	tmp, err := os.CreateTemp(e.dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("could not create schedule file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()
	if err := EncodeSchedule(tmp, s); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("could not sync schedule file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write schedule file: %w", err)
	}
	// link fails if path exists, unlike rename
	if err := os.Link(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not save schedule file: %w", err)
	}
	return nil
}

// Apply runs a loan application: the applicant's stored age selects the
// category, the principal is checked against its sanction and the schedule
// is computed.
func (e *Engine) Apply(app Application) (Report, error) {
	if e.ages == nil {
		return Report{}, errors.New("loan engine has no age source")
	}
	v, err := e.ages.GetField(app.AccountID, banking.FieldAge)
	if err != nil {
		return Report{}, err
	}
	age, err := strconv.Atoi(v)
	if err != nil {
		return Report{}, fmt.Errorf("account %s has an invalid age %q: %w", app.AccountID, v, err)
	}

	c, err := CategoryOf(age)
	if err != nil {
		return Report{}, err
	}
	if app.Category != 0 && app.Category != c {
		return Report{}, fmt.Errorf("%w: a %s loan is not offered at %d years old, the applicant qualifies for a %s loan",
			ErrAgeIneligible, app.Category, age, c)
	}
	if err := ValidatePrincipal(app.Principal); err != nil {
		return Report{}, err
	}
	if ceiling := Sanction(c, app.MonthlyIncome); app.Principal.GreaterThan(ceiling) {
		return Report{}, fmt.Errorf("%w: asked %s, sanctioned %s", ErrExceedsSanction, app.Principal, ceiling)
	}
	return e.ComputeSchedule(age, app.TermYears, app.Principal)
}

// LoadSchedule reads the saved schedule for this term and principal.
func (e *Engine) LoadSchedule(termYears int, principal decimal.Decimal) ([]Installment, error) {
	path := e.SchedulePath(termYears, principal)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := DecodeSchedule(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
