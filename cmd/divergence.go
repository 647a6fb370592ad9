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

// divergenceCmd holds the flags for the 'divergence' subcommand.
type divergenceCmd struct {
	account string
	period  periodFlags
}

func (*divergenceCmd) Name() string { return "divergence" }
func (*divergenceCmd) Synopsis() string {
	return "display the transactions counted differently by accounting and value dates"
}
func (*divergenceCmd) Usage() string {
	return `fin divergence [-a <account>] [-p <period> | -start <date>] [-d <date>]

  Lists the transactions that belong to the period by their accounting date
  only, or by their value date only, and the change of income, expenses and
  net result when switching from accounting to value dates.
`
}

func (c *divergenceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to all the accounts.")
	c.period.SetFlags(f, date.Monthly)
}

func (c *divergenceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	txs := ws.ledger.Transactions
	if c.account != "" {
		acc, err := ws.account(c.account)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		txs = nil
		for _, tx := range ws.ledger.Transactions {
			if tx.Touches(acc.ID) {
				txs = append(txs, tx)
			}
		}
	}
	d, err := finance.FindDivergent(txs, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewDivergence(d, ws.ledger.Accounts)
	return printReport(view, func() string { return renderer.RenderDivergence(view) })
}
