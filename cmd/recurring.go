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

// occurrencesCmd holds the flags for the 'occurrences' subcommand.
type occurrencesCmd struct {
	account string
	period  periodFlags
}

func (*occurrencesCmd) Name() string     { return "occurrences" }
func (*occurrencesCmd) Synopsis() string { return "list the dates of the recurring transactions" }
func (*occurrencesCmd) Usage() string {
	return `fin occurrences [-a <account>] [-p <period> | -start <date>] [-d <date>]

  Lists, for every active recurring transaction, its occurrence dates in the
  period, counted from its start date.
`
}

func (c *occurrencesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to all the accounts.")
	c.period.SetFlags(f, date.Monthly)
}

func (c *occurrencesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	account := ""
	if c.account != "" {
		acc, err := ws.account(c.account)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		account = acc.ID
	}

	var schedules []finance.Schedule
	var truncated []finance.RecurringTransaction
	for _, rt := range ws.ledger.AllRecurring() {
		if account != "" && rt.Account != account {
			continue
		}
		s, err := finance.Occurrences(rt, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if s.Truncated {
			truncated = append(truncated, rt)
		}
		if len(s.Dates) > 0 {
			schedules = append(schedules, s)
		}
	}
	warnTruncated(ctx, truncated)
	view := renderer.NewOccurrences(rng, schedules, ws.ledger.Accounts)
	return printReport(view, func() string { return renderer.RenderOccurrences(view) })
}

// calendarCmd holds the flags for the 'calendar' subcommand.
type calendarCmd struct {
	date string
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the month of the recurring transactions" }
func (*calendarCmd) Usage() string {
	return `fin calendar [-d <date>]

  Displays the month containing the date as a calendar, with the days a
  recurring transaction occurs in bold, and the list of these occurrences.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A date in the month to display, defaults to today.")
}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := date.Today()
	month := today
	if c.date != "" {
		var err error
		if month, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	days, err := finance.Calendar(ws.ledger.AllRecurring(), month, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewCalendar(days)
	return printReport(view, func() string { return renderer.RenderCalendar(view) })
}

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	account string
	until   string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the balance of an account with its recurring transactions" }
func (*projectCmd) Usage() string {
	return `fin project [-a <account>] [-until <date>]

  Starts from the balance of the account at the end of today and applies the
  pending occurrences of its recurring transactions, from their next due
  date, until the given date.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name. Defaults to the only account.")
	f.StringVar(&c.until, "until", "+3m", "Last day of the projection.")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := date.Today()
	until, err := date.Parse(c.until)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if until.Before(today) {
		fmt.Fprintf(os.Stderr, "Error: cannot project before today (%s)\n", today)
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
	p, err := finance.Project(r.ClosingBalance(today), ws.ledger.AllRecurring(), acc.ID, date.Between(today, until))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	warnTruncated(ctx, p.Truncated)
	view := renderer.NewProjection(p, acc)
	return printReport(view, func() string { return renderer.RenderProjection(view) })
}

// dueCmd holds the flags for the 'due' subcommand.
type dueCmd struct {
	days int
}

func (*dueCmd) Name() string     { return "due" }
func (*dueCmd) Synopsis() string { return "list the overdue and upcoming recurring transactions" }
func (*dueCmd) Usage() string {
	return `fin due [-days <n>]

  Lists the active recurring transactions whose next due date is past, and
  those due in the next days. The horizon defaults to the upcoming_days
  preference.
`
}

func (c *dueCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Number of days ahead to look for upcoming transactions. Defaults to the preferences.")
}

func (c *dueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	horizon := c.days
	if horizon <= 0 {
		horizon = ws.prefs.UpcomingDays
	}
	r, err := finance.Due(ws.ledger.AllRecurring(), date.Today(), horizon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	view := renderer.NewDue(r, horizon, ws.ledger.Accounts)
	return printReport(view, func() string { return renderer.RenderDue(view) })
}

// installmentsCmd holds the flags for the 'installments' subcommand.
type installmentsCmd struct {
	all bool
}

func (*installmentsCmd) Name() string     { return "installments" }
func (*installmentsCmd) Synopsis() string { return "display the installment plans and their remaining payments" }
func (*installmentsCmd) Usage() string {
	return `fin installments [-all]

  Displays the active installment plans: what is paid, what remains, the
  number of payments left and the date of the last one.
`
}

func (c *installmentsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include the inactive plans")
}

func (c *installmentsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ws, err := loadWorkspace(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var plans []finance.InstallmentPlan
	for _, p := range ws.ledger.Installments {
		if p.Active || c.all {
			plans = append(plans, p)
		}
	}
	view, err := renderer.NewInstallments(plans, ws.ledger.Accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return printReport(view, func() string { return renderer.RenderInstallments(view) })
}
