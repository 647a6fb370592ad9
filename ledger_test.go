package finance

import (
	"strings"
	"testing"

	"github.com/etnz/finance/date"
)

func TestLedger_FindAccount(t *testing.T) {
	l := &Ledger{Accounts: []Account{{ID: "a1", Name: "Checking"}, {ID: "a2", Name: "Joint"}, {ID: "a3", Name: "joint"}}}
	if a, err := l.FindAccount("checking"); err != nil || a.ID != "a1" {
		t.Errorf("FindAccount(checking) = %v, %v", a, err)
	}
	if a, err := l.FindAccount("a2"); err != nil || a.ID != "a2" {
		t.Errorf("FindAccount(a2) = %v, %v", a, err)
	}
	if _, err := l.FindAccount("JOINT"); err == nil {
		t.Errorf("FindAccount() accepted an ambiguous name")
	}
	if _, err := l.FindAccount("savings"); err == nil {
		t.Errorf("FindAccount() accepted an unknown account")
	}
}

func TestLedger_Check(t *testing.T) {
	refund := income("r", "A", day(1, 10), 30)
	refund.RefundOf = "e"
	refunded := expense("e", "A", day(1, 5), 100)
	refunded.RefundedAmount = EUR(30)
	l := &Ledger{
		Accounts:     []Account{{ID: "A", Balance: EUR(0)}},
		Categories:   []Category{{ID: "food", Budget: EUR(100)}},
		Transactions: []Transaction{refunded, refund},
	}
	if err := l.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	bad := expense("x", "Z", day(1, 1), 1)
	bad.Category = "fun"
	wrongRefund := expense("w", "A", day(1, 1), 1)
	wrongRefund.RefundOf = "nothing"
	l.Transactions = append(l.Transactions, bad, wrongRefund, income("1", "A", day(1, 1), -1))
	l.Transactions[0].RefundedAmount = EUR(20)
	l.Recurring = []RecurringTransaction{{ID: "t", Type: Transfer, Account: "A", Recurrence: date.Monthly, Start: day(1, 1)}}
	l.Categories = append(l.Categories, Category{ID: "food"})

	err := l.Check()
	if err == nil {
		t.Fatal("Check() found nothing wrong")
	}
	for _, want := range []string{
		`unknown account "Z"`,
		`unknown category "fun"`,
		`unknown transaction "nothing"`,
		"refunds sum up to",
		"negative amount",
		"cannot be a transfer",
		`duplicate category id "food"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Check() error does not mention %q:\n%v", want, err)
		}
	}
}

func TestLedger_AllRecurring(t *testing.T) {
	plan := InstallmentPlan{ID: "tv", Account: "A", Total: EUR(300), Installment: EUR(100), Remaining: EUR(300), Frequency: date.Monthly, Start: day(1, 10), Active: true}
	paid := InstallmentPlan{ID: "car", Account: "A", Total: EUR(300), Installment: EUR(100), Remaining: EUR(300), Frequency: date.Monthly, Start: day(1, 10), Active: true}
	l := &Ledger{
		Recurring:    []RecurringTransaction{{ID: "car-payment", Type: Expense, Account: "A", Amount: EUR(100), Recurrence: date.Monthly, Start: day(1, 10), Active: true, Installment: "car"}},
		Installments: []InstallmentPlan{plan, paid},
	}
	all := l.AllRecurring()
	if len(all) != 2 || all[1].ID != "tv" || all[1].End != day(3, 10) {
		t.Errorf("AllRecurring() = %+v", all)
	}
}
