// Package cmd implements the fin subcommands over a data folder.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/google/subcommands"
)

// commands are the fin subcommands, and their group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&balanceCmd{}, "balances"},
	{&historyCmd{}, "balances"},
	{&statsCmd{}, "reports"},
	{&chartCmd{}, "reports"},
	{&divergenceCmd{}, "reports"},
	{&budgetCmd{}, "reports"},
	{&occurrencesCmd{}, "recurring"},
	{&calendarCmd{}, "recurring"},
	{&projectCmd{}, "recurring"},
	{&dueCmd{}, "recurring"},
	{&installmentsCmd{}, "recurring"},
	{&loanCmd{}, "tools"},
	{&checkCmd{}, "data"},
	{&fmtCmd{}, "data"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", envOr(EnvDataDir, "."), "Path to the data folder holding the .jsonl files")
var dateFieldFlag = flag.String("date-field", "", "Date placing transactions in time: accounting or value. Defaults to the preferences.")
var currencyFlag = flag.String("currency", "", "Currency of the amounts recorded without one. Defaults to the preferences.")
var logLevel = flag.String("log-level", envOr(EnvLogLevel, "warn"), "Log level: debug, info, warn or error")

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// workspace is the ledger and the settings a command runs with.
type workspace struct {
	ledger *finance.Ledger
	prefs  Preferences
	field  finance.DateField
}

// loadWorkspace decodes the data folder, resolving the settings from the
// preferences and the global flags.
func loadWorkspace(ctx context.Context) (*workspace, error) {
	log := FromContext(ctx)
	prefs, err := LoadPreferences(*dataDir)
	if err != nil {
		return nil, err
	}
	if *currencyFlag != "" {
		prefs.Currency = *currencyFlag
	}
	if *dateFieldFlag != "" {
		prefs.DateField = *dateFieldFlag
	}
	field, err := finance.ParseDateField(prefs.DateField)
	if err != nil {
		return nil, err
	}

	ledger, err := finance.DecodeLedger(*dataDir)
	if err != nil {
		return nil, fmt.Errorf("decoding data folder %q: %w", *dataDir, err)
	}
	ledger.SetCurrency(prefs.Currency)
	log.Debug().
		Str("data", *dataDir).
		Str("currency", prefs.Currency).
		Stringer("date_field", field).
		Int("accounts", len(ledger.Accounts)).
		Int("transactions", len(ledger.Transactions)).
		Msg("data folder loaded")
	return &workspace{ledger: ledger, prefs: prefs, field: field}, nil
}

// account returns the account named by query, or the only account when
// query is empty.
func (w *workspace) account(query string) (finance.Account, error) {
	if query == "" {
		if len(w.ledger.Accounts) != 1 {
			return finance.Account{}, fmt.Errorf("%d accounts in the data folder, select one with -a", len(w.ledger.Accounts))
		}
		return w.ledger.Accounts[0], nil
	}
	a, err := w.ledger.FindAccount(query)
	if err != nil {
		return finance.Account{}, err
	}
	return *a, nil
}

// periodFlags select a reporting range: the period containing -d, or the
// days from -start to -d.
type periodFlags struct {
	date   string
	period string
	start  string
}

func (p *periodFlags) SetFlags(f *flag.FlagSet, period date.Period) {
	f.StringVar(&p.date, "d", "", "Date for the report, defaults to today. See 'fin topic dates' for the supported formats.")
	f.StringVar(&p.period, "p", period.String(), "Period of the report (day, week, month, quarter, year)")
	f.StringVar(&p.start, "start", "", "Start date of the reporting range. Overrides -p.")
}

func (p *periodFlags) Range() (date.Range, error) {
	on := date.Today()
	if p.date != "" {
		var err error
		if on, err = date.Parse(p.date); err != nil {
			return date.Range{}, fmt.Errorf("parsing date: %w", err)
		}
	}
	if p.start != "" {
		from, err := date.Parse(p.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		return date.Between(from, on), nil
	}
	period, err := date.ParsePeriod(p.period)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(on, period), nil
}

// warnTruncated logs the recurring transactions whose occurrences were cut.
func warnTruncated(ctx context.Context, rts []finance.RecurringTransaction) {
	log := FromContext(ctx)
	for _, rt := range rts {
		log.Warn().
			Str("recurring", rt.ID).
			Int("max", finance.MaxOccurrences).
			Msg("too many occurrences, the schedule is truncated")
	}
}
