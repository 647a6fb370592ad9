package finance

import (
	"fmt"

	"github.com/etnz/finance/date"
)

// Membership tells how a transaction belongs to a period under both date fields.
type Membership int

const (
	BothOut        Membership = iota // neither date is in the period
	BothIn                           // both dates are in the period
	AccountingOnly                   // only the accounting date is in the period
	ValueOnly                        // only the value date is in the period
)

func (m Membership) String() string {
	switch m {
	case BothOut:
		return "both-out"
	case BothIn:
		return "both-in"
	case AccountingOnly:
		return "accounting-only"
	case ValueOnly:
		return "value-only"
	default:
		return "unknown"
	}
}

// Classify returns the membership of tx in rng.
func Classify(tx Transaction, rng date.Range) Membership {
	acc, val := rng.Contains(tx.On(Accounting)), rng.Contains(tx.On(Value))
	switch {
	case acc && val:
		return BothIn
	case acc:
		return AccountingOnly
	case val:
		return ValueOnly
	default:
		return BothOut
	}
}

// Divergence lists the transactions whose membership in a period depends on
// the date field, and what switching from accounting to value dates changes.
type Divergence struct {
	Range          date.Range
	AccountingOnly []Transaction
	ValueOnly      []Transaction
	IncomeDelta    Money // value-only income minus accounting-only income
	ExpenseDelta   Money // value-only expenses minus accounting-only expenses
}

// NetImpact is the change of the period's net result when switching from
// accounting to value dates.
func (d Divergence) NetImpact() Money { return d.IncomeDelta.Sub(d.ExpenseDelta) }

// Empty reports whether no transaction diverges.
func (d Divergence) Empty() bool { return len(d.AccountingOnly) == 0 && len(d.ValueOnly) == 0 }

// FindDivergent classifies txs against rng. Divergent transfers are listed but
// do not move income or expenses. Amounts in different currencies cannot be
// summed and are an error.
func FindDivergent(txs []Transaction, rng date.Range) (Divergence, error) {
	d := Divergence{Range: rng}
	for _, tx := range txs {
		sign := 1
		switch Classify(tx, rng) {
		case AccountingOnly:
			d.AccountingOnly = append(d.AccountingOnly, tx)
			sign = -1
		case ValueOnly:
			d.ValueOnly = append(d.ValueOnly, tx)
		default:
			continue
		}
		for _, total := range []Money{d.IncomeDelta, d.ExpenseDelta} {
			if err := checkCurrency(total, tx.Amount); err != nil {
				return Divergence{}, fmt.Errorf("transaction %s: %w", tx.ID, err)
			}
		}
		amount := tx.Amount
		if sign < 0 {
			amount = amount.Neg()
		}
		switch tx.Type {
		case Income:
			d.IncomeDelta = d.IncomeDelta.Add(amount)
		case Expense:
			d.ExpenseDelta = d.ExpenseDelta.Add(amount)
		}
	}
	return d, nil
}
