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

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	account string
	period  periodFlags
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of an account over a period" }
func (*balanceCmd) Usage() string {
	return `fin balance [-a <account>] [-p <period> | -start <date>] [-d <date>]

  Displays the opening and closing balance of an account, and every
  transaction in between with the balance after it.

  The balance at any date is replayed backward from the account's current
  balance, so the closing balance of today is the stored balance.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to the only account.")
	c.period.SetFlags(f, date.Monthly)
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	r, err := finance.NewReplay(acc, ws.ledger.Transactions, ws.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying account %q: %v\n", acc.ID, err)
		return subcommands.ExitFailure
	}
	view := renderer.NewBalance(r, rng, ws.field)
	return printReport(view, func() string { return renderer.RenderBalance(view) })
}

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	account string
	period  periodFlags
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the evolution of the balance" }
func (*historyCmd) Usage() string {
	return `fin history [-a <account>] [-p <period> | -start <date>] [-d <date>]

  Displays the closing balance of every day the balance changed, for one
  account or, by default, for all the accounts together.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to all the accounts.")
	c.period.SetFlags(f, date.Yearly)
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	accounts, title := ws.ledger.Accounts, "All accounts"
	if c.account != "" {
		acc, err := ws.account(c.account)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		accounts, title = []finance.Account{acc}, acc.Name
	}
	h, err := finance.Evolution(accounts, ws.ledger.Transactions, rng, ws.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewHistory(title, rng, h)
	return printReport(view, func() string { return renderer.RenderHistory(view) })
}
