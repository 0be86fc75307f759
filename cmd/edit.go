package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking"
)

type editCmd struct {
	accountFlags
	field string
	value string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a profile field of an account" }
func (*editCmd) Usage() string {
	return `econ edit (-account <number> | -phone <phone>) -field <field> -value <value>

  Changes one profile field: FIRSTNAME, LASTNAME, DATE_OF_BIRTH, GENDER,
  PROFESSION, PHONENUMBER or EMAIL. The stored age is not recomputed when the
  date of birth changes.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.SetFlags(f)
	f.StringVar(&c.field, "field", "", "Field to change")
	f.StringVar(&c.value, "value", "", "New value")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	field, err := banking.ParseField(c.field)
	if err != nil {
		return usage("%v", err)
	}
	if err := validateField(field, c.value); err != nil {
		return usage("%v", err)
	}
	bank, _, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	id, err := c.resolve(bank)
	if err != nil {
		return fail(err, "could not find the account")
	}
	if err := bank.Edit(id, field, c.value); err != nil {
		return fail(err, "could not change %s", field)
	}
	success("%s of account %s changed", field, id)
	return subcommands.ExitSuccess
}
