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

// budgetCmd holds the flags for the 'budget' subcommand.
type budgetCmd struct {
	period  periodFlags
	project bool
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "display the budget consumption per category" }
func (*budgetCmd) Usage() string {
	return `fin budget [-p <period> | -start <date>] [-d <date>] [-project=false]

  Displays, for every category with a budget, the expenses of the period and
  the share of the budget they consume.

  With -project (the default), the recurring expenses still due before the
  end of the period are added to forecast the categories at risk.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	c.period.SetFlags(f, date.Monthly)
	f.BoolVar(&c.project, "project", true, "Add the recurring expenses due until the end of the period")
}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	var statuses []finance.BudgetStatus
	if c.project {
		statuses, err = finance.ProjectBudgets(ws.ledger.Categories, ws.ledger.Transactions, ws.ledger.AllRecurring(), rng, date.Today(), ws.field)
	} else {
		statuses, err = finance.Budgets(ws.ledger.Categories, ws.ledger.Transactions, rng, ws.field)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewBudgets(rng, statuses)
	return printReport(view, func() string { return renderer.RenderBudgets(view) })
}
