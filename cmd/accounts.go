package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/renderer"
)

type accountsCmd struct {
	csv bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list all accounts" }
func (*accountsCmd) Usage() string {
	return `econ accounts [-csv]

  Lists every account of the ledger with its balance. With -csv the accounts
  are exported in the ledger file format instead.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Export the accounts as CSV with the ledger header")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, cfg, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	var list []banking.Account
	for a, err := range bank.Store().ScanAll() {
		if err != nil {
			return fail(err, "could not read the ledger")
		}
		list = append(list, a)
	}
	if c.csv {
		if err := banking.EncodeLedger(stdout, list...); err != nil {
			return fail(err, "could not export the accounts")
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderAccounts(renderer.NewAccounts(list, cfg.Currency)))
	return subcommands.ExitSuccess
}
