package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// statsCmd holds the flags for the 'stats' subcommand.
type statsCmd struct {
	period periodFlags
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display income, expenses and balances of all accounts" }
func (*statsCmd) Usage() string {
	return `fin stats [-p <period> | -start <date>] [-d <date>]

  Displays the income, expenses and transfer fees of the period, and for
  every account its opening and closing balance.

  Transactions recorded with include_in_stats false are left out of income
  and expenses, they still move the balances.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	c.period.SetFlags(f, date.Monthly)
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := c.period.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	o, err := finance.NewOverview(ws.ledger.Accounts, ws.ledger.Transactions, rng, ws.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewStats(o, ws.field)
	return printReport(view, func() string { return renderer.RenderStats(view) })
}

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	account string
	period  periodFlags
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display income and expenses of an account per day, week or month" }
func (*chartCmd) Usage() string {
	return `fin chart [-a <account>] [-p <period> | -start <date>] [-d <date>]

  Splits the period into buckets and displays the income and expenses of
  each one. Buckets are days up to a month, weeks up to a quarter, and
  months beyond.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to the only account.")
	c.period.SetFlags(f, date.Yearly)
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := c.period.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	acc, err := ws.account(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	chart, err := finance.Buckets(acc.ID, ws.ledger.Transactions, rng, ws.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := FromContext(ctx)
	log.Debug().Stringer("granularity", chart.Granularity).Int("buckets", len(chart.Buckets)).Msg("chart computed")
	view := renderer.NewChart(acc, rng, chart)
	return printReport(view, func() string { return renderer.RenderChart(view) })
}
