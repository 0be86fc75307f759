// Package cmd implements the command line interface of the bank ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/subcommands"
	"github.com/rupeshchamp/banking"
	"github.com/rupeshchamp/banking/loan"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&openCmd{}, "accounts")
	c.Register(&editCmd{}, "accounts")
	c.Register(&showCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&balanceCmd{}, "transactions")

	c.Register(&loanCmd{}, "loans")
	c.Register(&scheduleCmd{}, "loans")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "econ.toml", "Path to the TOML configuration file, defaults apply if it does not exist")
var dataDir = flag.String("data-dir", "", "Directory holding the ledger and the loan schedules, overrides the configuration")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// loadConfig reads the configuration file and applies the global flags over it.
func loadConfig() (banking.Config, error) {
	cfg, err := banking.LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

// openBank is the central function to open the ledger.
func openBank() (*banking.Bank, banking.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := banking.Open(cfg.LedgerPath())
	if err != nil {
		return nil, cfg, err
	}
	return banking.NewBank(store, cfg.Limits), cfg, nil
}

// openEngine returns the loan engine of cfg, reading ages from store.
func openEngine(cfg banking.Config, store *banking.Store) *loan.Engine {
	return loan.NewEngine(cfg.LoanPath(), loan.WithAgeSource(store))
}

// printMarkdown writes md to stdout, rendered for the terminal unless -plain is set.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		out, err := r.Render(md)
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

func styled(s lipgloss.Style, msg string) string {
	if *plain {
		return msg
	}
	return s.Render(msg)
}

// success prints a confirmation message.
func success(format string, a ...any) {
	fmt.Fprintln(stdout, styled(okStyle, fmt.Sprintf(format, a...)))
}

// warn prints a warning on stderr.
func warn(format string, a ...any) {
	fmt.Fprintln(stderr, styled(warnStyle, "Warning: "+fmt.Sprintf(format, a...)))
}

// fail prints err on stderr and returns the failure status.
func fail(err error, format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintln(stderr, styled(errorStyle, fmt.Sprintf("Error: "+format+": %v", append(a, err)...)))
	return subcommands.ExitFailure
}

// usage prints a flag error on stderr and returns the usage status.
func usage(format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintln(stderr, styled(errorStyle, "Error: "+fmt.Sprintf(format, a...)))
	return subcommands.ExitUsageError
}

var errNoAccount = errors.New("one of -account or -phone is required")

// accountFlags designate an account by its number or by the phone number registered with it.
type accountFlags struct {
	account string
	phone   string
}

func (a *accountFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.account, "account", "", "Account number")
	f.StringVar(&a.phone, "phone", "", "Phone number registered with the account")
}

func (a *accountFlags) check() error {
	switch {
	case a.account != "" && a.phone != "":
		return errors.New("-account and -phone are mutually exclusive")
	case a.account == "" && a.phone == "":
		return errNoAccount
	}
	return nil
}

// resolve returns the designated account number.
func (a *accountFlags) resolve(b *banking.Bank) (string, error) {
	if a.account != "" {
		return a.account, nil
	}
	return b.Resolve(a.phone)
}
