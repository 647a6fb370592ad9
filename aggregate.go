package finance

import (
	"fmt"
	"slices"

	"github.com/etnz/finance/date"
)

// Stats are the income and expense totals of one account over a period.
type Stats struct {
	Income    Money
	Expenses  Money // including fees of outgoing transfers
	Transfers int   // transfers touching the account, counted even when excluded from stats
}

// Net returns Income minus Expenses.
func (s Stats) Net() Money { return s.Income.Sub(s.Expenses) }

func (s *Stats) add(tx Transaction, account string) error {
	for _, total := range []Money{s.Income, s.Expenses} {
		if err := checkCurrency(total, tx.Amount); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
	}
	if tx.Type == Transfer {
		s.Transfers++
	}
	if !tx.IncludeInStats {
		return nil
	}
	switch {
	case tx.Type == Income:
		s.Income = s.Income.Add(tx.Amount)
	case tx.Type == Expense:
		s.Expenses = s.Expenses.Add(tx.Amount)
	case tx.TransferTo == account:
		s.Income = s.Income.Add(tx.Amount)
	default:
		s.Expenses = s.Expenses.Add(tx.Amount).Add(tx.TransferFee)
	}
	return nil
}

// Aggregate sums the transactions of account whose effective date is in rng.
//
// Incoming transfers count as income and outgoing ones as expenses (fee
// included), so that Net equals the balance change over rng when every
// transaction is included in stats.
func Aggregate(account string, txs []Transaction, rng date.Range, field DateField) (Stats, error) {
	var s Stats
	for _, tx := range txs {
		if !tx.Touches(account) || !rng.Contains(tx.On(field)) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return Stats{}, err
		}
		if err := s.add(tx, account); err != nil {
			return Stats{}, err
		}
	}
	return s, nil
}

// Bucket is one bar of a chart.
type Bucket struct {
	Label string
	Range date.Range
	Stats
}

// Chart splits a period into buckets whose size depends on its length.
type Chart struct {
	Granularity date.Period
	Buckets     []Bucket
}

// Granularity returns the bucket size for rng: daily up to 31 days, weekly
// up to 93 days, monthly beyond.
func Granularity(rng date.Range) date.Period {
	switch days := rng.From.DaysUntil(rng.To); {
	case days <= 31:
		return date.Daily
	case days <= 93:
		return date.Weekly
	default:
		return date.Monthly
	}
}

// Buckets aggregates the transactions of account in rng per bucket.
//
// Weeks start on Monday, the first and last buckets are whole periods and
// may extend beyond rng. Transactions outside rng are ignored before
// bucketing and each remaining one lands in exactly one bucket.
func Buckets(account string, txs []Transaction, rng date.Range, field DateField) (Chart, error) {
	chart := Chart{Granularity: Granularity(rng)}
	if rng.IsEmpty() {
		return chart, nil
	}
	label := labeler(chart.Granularity, rng)
	for p := range rng.Periods(chart.Granularity) {
		chart.Buckets = append(chart.Buckets, Bucket{Label: label(len(chart.Buckets), p), Range: p})
	}

	for _, tx := range txs {
		on := tx.On(field)
		if !tx.Touches(account) || !rng.Contains(on) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return Chart{}, err
		}
		i := slices.IndexFunc(chart.Buckets, func(b Bucket) bool { return b.Range.Contains(on) })
		if i < 0 {
			continue
		}
		if err := chart.Buckets[i].add(tx, account); err != nil {
			return Chart{}, err
		}
	}
	return chart, nil
}

// labeler returns the bucket label function for a chart.
func labeler(p date.Period, rng date.Range) func(i int, r date.Range) string {
	sameYear := rng.From.Year() == rng.To.Year()
	switch p {
	case date.Daily:
		return func(_ int, r date.Range) string { return r.From.Format("Jan 02") }
	case date.Weekly:
		return func(i int, _ date.Range) string { return fmt.Sprintf("W%d", i+1) }
	default:
		if sameYear {
			return func(_ int, r date.Range) string { return r.From.Format("Jan") }
		}
		return func(_ int, r date.Range) string { return r.From.Format("Jan 06") }
	}
}

// AccountSummary is one account line of an Overview.
type AccountSummary struct {
	Account Account
	Opening Money // at the start of the period
	Closing Money // at the end of the period
	Stats
}

// Overview is the dashboard summary of all accounts over a period.
//
// Transfers between accounts cancel out, only their fees leave the
// accounts: Net is Income - Expenses - Fees.
type Overview struct {
	Range    date.Range
	Accounts []AccountSummary
	Income   Money
	Expenses Money
	Fees     Money
	Opening  Money
	Closing  Money
}

// Net returns the overall result of the period.
func (o Overview) Net() Money { return o.Income.Sub(o.Expenses).Sub(o.Fees) }

// NewOverview computes the overview of accounts over rng.
func NewOverview(accounts []Account, txs []Transaction, rng date.Range, field DateField) (Overview, error) {
	o := Overview{Range: rng}
	for _, acc := range accounts {
		r, err := NewReplay(acc, txs, field)
		if err != nil {
			return Overview{}, err
		}
		s, err := Aggregate(acc.ID, txs, rng, field)
		if err != nil {
			return Overview{}, err
		}
		line := AccountSummary{Account: acc, Opening: r.BalanceAt(rng.From), Closing: r.ClosingBalance(rng.To), Stats: s}
		if err := checkCurrency(o.Opening, line.Opening); err != nil {
			return Overview{}, fmt.Errorf("account %s: %w", acc.ID, err)
		}
		o.Accounts = append(o.Accounts, line)
		o.Opening = o.Opening.Add(line.Opening)
		o.Closing = o.Closing.Add(line.Closing)
	}

	for _, tx := range txs {
		if !tx.IncludeInStats || !rng.Contains(tx.On(field)) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return Overview{}, err
		}
		for _, total := range []Money{o.Opening, o.Income, o.Expenses, o.Fees} {
			if err := checkCurrency(total, tx.Amount); err != nil {
				return Overview{}, fmt.Errorf("transaction %s: %w", tx.ID, err)
			}
		}
		switch tx.Type {
		case Income:
			o.Income = o.Income.Add(tx.Amount)
		case Expense:
			o.Expenses = o.Expenses.Add(tx.Amount)
		case Transfer:
			o.Fees = o.Fees.Add(tx.TransferFee)
		}
	}
	return o, nil
}
