package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking/renderer"
)

type showCmd struct {
	accountFlags
	json bool
	path string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display an account" }
func (*showCmd) Usage() string {
	return `econ show (-account <number> | -phone <phone>) [-json [-path <jsonpath>]]

  Displays the account record. With -json the record is printed as JSON, and
  -path selects a part of it with a JSONPath expression.

Usage Examples:
$ econ show -phone 9876543210 -json -path '$.amount'
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the record as JSON")
	f.StringVar(&c.path, "path", "", "JSONPath expression selecting part of the JSON record (implies -json)")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	a, err := bank.Store().LookupByKey(id)
	if err != nil {
		return fail(err, "could not read the account")
	}

	if !c.json && c.path == "" {
		printMarkdown(renderer.RenderAccount(renderer.NewAccount(a, cfg.Currency)))
		return subcommands.ExitSuccess
	}

	var v any = a
	if c.path != "" {
		v, err = selectJSON(a, c.path)
		if err != nil {
			return fail(err, "could not evaluate %q", c.path)
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(err, "could not encode the account")
	}
	fmt.Fprintln(stdout, string(b))
	return subcommands.ExitSuccess
}

// selectJSON evaluates a JSONPath expression against the JSON form of v.
func selectJSON(v any, path string) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return jsonpath.Get(path, doc)
}
