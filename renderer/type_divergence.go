package renderer

import (
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Divergence lists the transactions a period counts by one date only.
type Divergence struct {
	From           date.Date       `json:"from"`
	To             date.Date       `json:"to"`
	AccountingOnly []DivergentLine `json:"accountingOnly"`
	ValueOnly      []DivergentLine `json:"valueOnly"`
	IncomeDelta    finance.Money   `json:"incomeDelta"`
	ExpenseDelta   finance.Money   `json:"expenseDelta"`
	NetImpact      finance.Money   `json:"netImpact"`
}

// DivergentLine is a transaction whose two dates fall on both sides of a
// period boundary. Amount is negative when money leaves the account.
type DivergentLine struct {
	Date        date.Date     `json:"date"`
	ValueDate   date.Date     `json:"valueDate"`
	Account     string        `json:"account"`
	Description string        `json:"description"`
	Amount      finance.Money `json:"amount"`
}

func NewDivergence(d finance.Divergence, accounts []finance.Account) *Divergence {
	names := namesOf(accounts)
	lines := func(txs []finance.Transaction) []DivergentLine {
		var l []DivergentLine
		for _, tx := range txs {
			amount := tx.Amount
			if tx.Type != finance.Income {
				amount = amount.Neg()
			}
			l = append(l, DivergentLine{
				Date:        tx.Date,
				ValueDate:   tx.On(finance.Value),
				Account:     names.of(tx.Account),
				Description: describe(tx),
				Amount:      amount,
			})
		}
		return l
	}
	return &Divergence{
		From:           d.Range.From,
		To:             d.Range.To,
		AccountingOnly: lines(d.AccountingOnly),
		ValueOnly:      lines(d.ValueOnly),
		IncomeDelta:    d.IncomeDelta,
		ExpenseDelta:   d.ExpenseDelta,
		NetImpact:      d.NetImpact(),
	}
}
