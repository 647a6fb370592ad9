package renderer

import (
	"strings"

	"github.com/etnz/finance"
)

// cell makes s safe to print in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// describe returns a one line description of tx.
func describe(tx finance.Transaction) string {
	if tx.Description != "" {
		return cell(tx.Description)
	}
	if tx.Type == finance.Transfer {
		return cell("transfer to " + tx.TransferTo)
	}
	return string(tx.Type)
}

// describeRecurring returns a one line description of rt.
func describeRecurring(rt finance.RecurringTransaction) string {
	if rt.Description != "" {
		return cell(rt.Description)
	}
	return cell(rt.ID)
}

// signed returns the amount of rt with its direction.
func signed(rt finance.RecurringTransaction) finance.Money {
	if rt.Type == finance.Expense {
		return rt.Amount.Neg()
	}
	return rt.Amount
}

// accountNames maps account ids to their names, falling back to the id.
type accountNames map[string]string

func namesOf(accounts []finance.Account) accountNames {
	n := make(accountNames, len(accounts))
	for _, a := range accounts {
		n[a.ID] = a.Name
	}
	return n
}

func (n accountNames) of(id string) string {
	if name := n[id]; name != "" {
		return cell(name)
	}
	return cell(id)
}
