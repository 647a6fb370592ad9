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
	"github.com/shopspring/decimal"
)

// loanCmd holds the flags for the 'loan' subcommand.
type loanCmd struct {
	principal string
	rate      string
	months    int
	frequency string
	kind      string
	start     string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "compute the repayment schedule of a loan" }
func (*loanCmd) Usage() string {
	return `fin loan -principal <amount> -rate <percent> -months <n> [-frequency <f>] [-kind <k>] [-start <date>]

  Computes the payments of a loan and its amortization table. An amortizable
  loan is repaid with constant payments, a bullet loan pays interest only and
  repays the principal with the last payment.

Usage Examples:
# 10000 at 5% a year over 12 months
$ fin loan -principal 10000 -rate 5 -months 12
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.principal, "principal", "", "Borrowed amount (required)")
	f.StringVar(&c.rate, "rate", "0", "Annual interest rate in percent")
	f.IntVar(&c.months, "months", 0, "Duration of the loan in months (required)")
	f.StringVar(&c.frequency, "frequency", "monthly", "Payment frequency: monthly, quarterly, semi_annual or annual")
	f.StringVar(&c.kind, "kind", string(finance.Amortizable), "Repayment profile: amortizable or bullet")
	f.StringVar(&c.start, "start", "", "Start date of the loan, the first payment is one period later. Defaults to today.")
}

func (c *loanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prefs, err := LoadPreferences(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	currency := prefs.Currency
	if *currencyFlag != "" {
		currency = *currencyFlag
	}

	loan, err := c.amortize(currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	view := renderer.NewLoan(loan)
	return printReport(view, func() string { return renderer.RenderLoan(view) })
}

func (c *loanCmd) amortize(currency string) (finance.Loan, error) {
	if c.principal == "" {
		return finance.Loan{}, fmt.Errorf("-principal is required")
	}
	principal, err := finance.ParseMoney(c.principal, currency)
	if err != nil {
		return finance.Loan{}, fmt.Errorf("parsing principal: %w", err)
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return finance.Loan{}, fmt.Errorf("parsing rate: %w", err)
	}
	freq, err := finance.ParseFrequency(c.frequency)
	if err != nil {
		return finance.Loan{}, err
	}
	kind, err := finance.ParseLoanKind(c.kind)
	if err != nil {
		return finance.Loan{}, err
	}
	start := date.Today()
	if c.start != "" {
		if start, err = date.Parse(c.start); err != nil {
			return finance.Loan{}, fmt.Errorf("parsing start date: %w", err)
		}
	}
	return finance.Amortize(principal, rate, c.months, freq, kind, start)
}
