package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/renderer"
)

type openCmd struct {
	profile banking.Profile
	deposit int64
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open a new savings account" }
func (*openCmd) Usage() string {
	return `econ open -first <name> -last <name> -dob <YYYY-MM-DD> -gender <gender> -profession <profession> -phone <phone> -email <email> -deposit <amount>

  Opens an account with an opening deposit. The account number is generated
  from the current year and month. The holder must be of age and the phone
  number must not be registered with another account.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.profile.FirstName, "first", "", "First name")
	f.StringVar(&c.profile.LastName, "last", "", "Last name")
	f.StringVar(&c.profile.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&c.profile.Gender, "gender", "", "Gender")
	f.StringVar(&c.profile.Profession, "profession", "", "Profession")
	f.StringVar(&c.profile.Phone, "phone", "", "10-digit phone number")
	f.StringVar(&c.profile.Email, "email", "", "Email address")
	f.Int64Var(&c.deposit, "deposit", 0, "Opening deposit")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validateProfile(c.profile); err != nil {
		return usage("%v", err)
	}
	bank, cfg, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	a, err := bank.Open(c.profile, c.deposit)
	if err != nil {
		return fail(err, "could not open the account")
	}
	success("Account %s opened for %s", a.ID, a.Name())
	printMarkdown(renderer.RenderAccount(renderer.NewAccount(a, cfg.Currency)))
	return subcommands.ExitSuccess
}
