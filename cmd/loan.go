package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking/loan"
	"github.com/rupeshchamp/banking/renderer"
	"github.com/shopspring/decimal"
)

type loanCmd struct {
	accountFlags
	category string
	term     int
	amount   string
	income   string
	html     string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "compute the repayment schedule of a loan" }
func (*loanCmd) Usage() string {
	return `econ loan (-account <number> | -phone <phone>) -term <years> -amount <principal> [-income <monthly income>] [-category <young|standard|senior>] [-html <file>]

  Prices a loan from the holder's age and the term, then prints its monthly
  repayment schedule and saves it in the loan directory as
  <term>_years_<principal>.csv.

  Rates (annual):
    young     18 to 21   6% under 5 years, 8% otherwise, up to 1000000
    standard  22 to 57   12% under 5 years, 14% otherwise, up to 10 months of income capped at 2500000
    senior    58 and up  8% under 5 years, 10% otherwise, up to 1500000

  If a schedule with the same term and amount was already saved it is left
  unchanged: choose another term or amount to save a new one.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.SetFlags(f)
	f.StringVar(&c.category, "category", "", "Requested loan product (young, standard, senior). Defaults to the holder's bracket.")
	f.IntVar(&c.term, "term", 0, "Loan term in years (1 to 30)")
	f.StringVar(&c.amount, "amount", "", "Principal, at least 100000")
	f.StringVar(&c.income, "income", "0", "Monthly income, sets the ceiling of standard loans")
	f.StringVar(&c.html, "html", "", "Also write the schedule as an HTML page to this file")
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	app := loan.Application{TermYears: c.term}
	var err error
	if app.Principal, err = decimal.NewFromString(c.amount); err != nil {
		return usage("invalid -amount %q: %v", c.amount, err)
	}
	if app.MonthlyIncome, err = decimal.NewFromString(c.income); err != nil {
		return usage("invalid -income %q: %v", c.income, err)
	}
	if c.category != "" {
		if app.Category, err = loan.ParseCategory(c.category); err != nil {
			return usage("%v", err)
		}
	}

	bank, cfg, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	if app.AccountID, err = c.resolve(bank); err != nil {
		return fail(err, "could not find the account")
	}
	report, err := openEngine(cfg, bank.Store()).Apply(app)
	if err != nil {
		return fail(err, "loan refused")
	}

	md := renderer.RenderSchedule(renderer.NewSchedule(report, cfg.Currency))
	printMarkdown(md)
	if report.Created {
		success("Schedule saved to %s", report.Path)
	} else {
		warn("%s already exists and was left unchanged, choose another term or amount to save a new schedule", report.Path)
	}

	if c.html != "" {
		page, err := renderer.HTMLPage(fmt.Sprintf("%d years loan of %s", report.TermYears, report.Principal), md)
		if err != nil {
			return fail(err, "could not render the schedule")
		}
		if err := os.WriteFile(c.html, []byte(page), 0644); err != nil {
			return fail(err, "could not write %s", c.html)
		}
		success("Schedule page written to %s", c.html)
	}
	return subcommands.ExitSuccess
}

type scheduleCmd struct {
	term   int
	amount string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display a saved repayment schedule" }
func (*scheduleCmd) Usage() string {
	return `econ schedule -term <years> -amount <principal>

  Displays the schedule saved by 'econ loan' for this term and principal.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.term, "term", 0, "Loan term in years")
	f.StringVar(&c.amount, "amount", "", "Principal")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	principal, err := decimal.NewFromString(c.amount)
	if err != nil {
		return usage("invalid -amount %q: %v", c.amount, err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err, "could not load the configuration")
	}
	rows, err := loan.NewEngine(cfg.LoanPath()).LoadSchedule(c.term, principal)
	if err != nil {
		return fail(err, "could not read the schedule")
	}
	printMarkdown(renderer.RenderScheduleTable(renderer.NewScheduleTable(c.term, principal, rows, cfg.Currency)))
	return subcommands.ExitSuccess
}
