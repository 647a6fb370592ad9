package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	reconcile bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the data folder" }
func (*checkCmd) Usage() string {
	return `fin check [-reconcile]

  Validates every record of the data folder and the references between
  them, and reports all the problems found.

  With -reconcile, the whole history of every account is also replayed from
  zero and compared to its stored balance. The difference is the opening
  balance the account was created with.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.reconcile, "reconcile", false, "Compare the stored balances to their replayed history")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ws.ledger.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid data folder %q:\n%v\n", *dataDir, err)
		return subcommands.ExitFailure
	}
	if c.reconcile {
		log := FromContext(ctx)
		for _, acc := range ws.ledger.Accounts {
			sum, ok, err := finance.Reconcile(acc, ws.ledger.Transactions)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reconciling account %q: %v\n", acc.ID, err)
				return subcommands.ExitFailure
			}
			if ok {
				log.Info().Str("account", acc.ID).Stringer("balance", acc.Balance).Msg("history adds up to the balance")
				continue
			}
			fmt.Fprintf(stdout, "%s: history adds up to %s, balance is %s, opening balance %s\n", acc.Name, sum, acc.Balance, acc.Balance.Sub(sum))
		}
	}
	fmt.Fprintf(os.Stderr, "✅ %d accounts, %d transactions, %d recurring transactions checked.\n",
		len(ws.ledger.Accounts), len(ws.ledger.Transactions), len(ws.ledger.Recurring))
	return subcommands.ExitSuccess
}
