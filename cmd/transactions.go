package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking"
)

type depositCmd struct {
	accountFlags
	amount int64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money into an account" }
func (*depositCmd) Usage() string {
	return `econ deposit (-account <number> | -phone <phone>) -amount <amount>

  Adds the amount to the account balance.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.SetFlags(f)
	f.Int64Var(&c.amount, "amount", 0, "Amount to deposit")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return moveMoney(&c.accountFlags, c.amount, "deposit", "Deposited", (*banking.Bank).Deposit)
}

type withdrawCmd struct {
	accountFlags
	amount int64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw money from an account" }
func (*withdrawCmd) Usage() string {
	return `econ withdraw (-account <number> | -phone <phone>) -amount <amount>

  Takes the amount from the account balance. The balance left must not fall
  below the minimum balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.SetFlags(f)
	f.Int64Var(&c.amount, "amount", 0, "Amount to withdraw")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return moveMoney(&c.accountFlags, c.amount, "withdrawal", "Withdrew", (*banking.Bank).Withdraw)
}

// moveMoney runs a balance changing operation on the designated account.
func moveMoney(a *accountFlags, amount int64, name, verb string, op func(*banking.Bank, string, int64) (int64, error)) subcommands.ExitStatus {
	if err := a.check(); err != nil {
		return usage("%v", err)
	}
	if amount <= 0 {
		return usage("-amount must be positive")
	}
	bank, cfg, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	id, err := a.resolve(bank)
	if err != nil {
		return fail(err, "could not find the account")
	}
	balance, err := op(bank, id, amount)
	if err != nil {
		return fail(err, "%s of %d refused", name, amount)
	}
	success("%s %s, new balance of account %s: %s", verb, banking.M(amount, cfg.Currency), id, banking.M(balance, cfg.Currency))
	return subcommands.ExitSuccess
}

type balanceCmd struct {
	accountFlags
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of an account" }
func (*balanceCmd) Usage() string {
	return `econ balance (-account <number> | -phone <phone>)
`
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	bank, cfg, err := openBank()
	if err != nil {
		return fail(err, "could not open the ledger")
	}
	id, err := c.resolve(bank)
	if err != nil {
		return fail(err, "could not find the account")
	}
	balance, err := bank.Balance(id)
	if err != nil {
		return fail(err, "could not read the balance")
	}
	success("Balance of account %s: %s", id, banking.M(balance, cfg.Currency))
	return subcommands.ExitSuccess
}
