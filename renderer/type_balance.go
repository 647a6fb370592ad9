package renderer

import (
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Balance is the balance history of one account over a period.
type Balance struct {
	Account   string        `json:"account"`
	DateField string        `json:"dateField"`
	From      date.Date     `json:"from"`
	To        date.Date     `json:"to"`
	Opening   finance.Money `json:"opening"`
	Closing   finance.Money `json:"closing"`
	Lines     []BalanceLine `json:"lines"`
}

// BalanceLine is the balance right after one transaction.
type BalanceLine struct {
	Date        date.Date     `json:"date"`
	Description string        `json:"description"`
	Change      finance.Money `json:"change"`
	Balance     finance.Money `json:"balance"`
}

// Change returns the balance variation over the period.
func (b Balance) Change() finance.Money { return b.Closing.Sub(b.Opening) }

// NewBalance replays r over rng.
func NewBalance(r *finance.Replay, rng date.Range, field finance.DateField) *Balance {
	acc := r.Account()
	b := &Balance{
		Account:   namesOf([]finance.Account{acc}).of(acc.ID),
		DateField: field.String(),
		From:      rng.From,
		To:        rng.To,
		Opening:   r.BalanceAt(rng.From),
		Closing:   r.ClosingBalance(rng.To),
	}
	for _, p := range r.Series(rng) {
		if p.Transaction == nil {
			continue
		}
		b.Lines = append(b.Lines, BalanceLine{
			Date:        p.Date,
			Description: describe(*p.Transaction),
			Change:      p.After.Sub(p.Before),
			Balance:     p.After,
		})
	}
	return b
}

// Stats is the overview of all accounts over a period.
type Stats struct {
	From      date.Date     `json:"from"`
	To        date.Date     `json:"to"`
	DateField string        `json:"dateField"`
	Opening   finance.Money `json:"opening"`
	Closing   finance.Money `json:"closing"`
	Income    finance.Money `json:"income"`
	Expenses  finance.Money `json:"expenses"`
	Fees      finance.Money `json:"fees"`
	Net       finance.Money `json:"net"`
	Accounts  []AccountLine `json:"accounts"`
}

// AccountLine is one account of the overview.
type AccountLine struct {
	Name      string        `json:"name"`
	Opening   finance.Money `json:"opening"`
	Income    finance.Money `json:"income"`
	Expenses  finance.Money `json:"expenses"`
	Transfers int           `json:"transfers"`
	Closing   finance.Money `json:"closing"`
}

func NewStats(o finance.Overview, field finance.DateField) *Stats {
	s := &Stats{
		From:      o.Range.From,
		To:        o.Range.To,
		DateField: field.String(),
		Opening:   o.Opening,
		Closing:   o.Closing,
		Income:    o.Income,
		Expenses:  o.Expenses,
		Fees:      o.Fees,
		Net:       o.Net(),
	}
	for _, a := range o.Accounts {
		s.Accounts = append(s.Accounts, AccountLine{
			Name:      namesOf([]finance.Account{a.Account}).of(a.Account.ID),
			Opening:   a.Opening,
			Income:    a.Income,
			Expenses:  a.Expenses,
			Transfers: a.Transfers,
			Closing:   a.Closing,
		})
	}
	return s
}

// Chart is the income and expenses of an account per bucket.
type Chart struct {
	Account     string       `json:"account"`
	From        date.Date    `json:"from"`
	To          date.Date    `json:"to"`
	Granularity string       `json:"granularity"`
	Buckets     []BucketLine `json:"buckets"`
}

// BucketLine is one bar of the chart.
type BucketLine struct {
	Label    string        `json:"label"`
	Income   finance.Money `json:"income"`
	Expenses finance.Money `json:"expenses"`
	Net      finance.Money `json:"net"`
}

func NewChart(acc finance.Account, rng date.Range, c finance.Chart) *Chart {
	v := &Chart{
		Account:     namesOf([]finance.Account{acc}).of(acc.ID),
		From:        rng.From,
		To:          rng.To,
		Granularity: c.Granularity.String(),
	}
	for _, b := range c.Buckets {
		v.Buckets = append(v.Buckets, BucketLine{Label: b.Label, Income: b.Income, Expenses: b.Expenses, Net: b.Net()})
	}
	return v
}
