package finance

import (
	"errors"
	"strings"
	"testing"

	"github.com/etnz/finance/date"
)

func usd(v float64) Money { return M(v, "USD") }

// Amounts in different currencies are never added together: every operation
// summing them reports ErrCurrencyMismatch.
func TestCurrencyMismatch(t *testing.T) {
	eurAccount := Account{ID: "A", Balance: EUR(100)}
	usdAccount := Account{ID: "B", Balance: usd(50)}
	dollars := income("1", "A", day(1, 5), 10)
	dollars.Amount = usd(10)
	rng := date.NewRange(day(1, 1), date.Monthly)
	rent := monthly("rent", day(1, 1), 800)
	rent.Amount = usd(800)
	rent.Category = "home"

	testCases := []struct {
		name string
		run  func() error
	}{
		{"NewReplay", func() error {
			_, err := NewReplay(eurAccount, []Transaction{dollars}, Accounting)
			return err
		}},
		{"BalanceAt", func() error {
			_, err := BalanceAt(eurAccount, []Transaction{dollars}, day(1, 1), Accounting)
			return err
		}},
		{"Reconcile", func() error {
			_, _, err := Reconcile(eurAccount, []Transaction{income("0", "A", day(1, 1), 1), dollars})
			return err
		}},
		{"Aggregate", func() error {
			_, err := Aggregate("A", []Transaction{income("0", "A", day(1, 1), 1), dollars}, rng, Accounting)
			return err
		}},
		{"Buckets", func() error {
			_, err := Buckets("A", []Transaction{income("0", "A", day(1, 5), 1), dollars}, rng, Accounting)
			return err
		}},
		{"NewOverview accounts", func() error {
			_, err := NewOverview([]Account{eurAccount, usdAccount}, nil, rng, Accounting)
			return err
		}},
		{"NewOverview transactions", func() error {
			_, err := NewOverview([]Account{eurAccount}, []Transaction{income("0", "C", day(1, 1), 1), dollars}, rng, Accounting)
			return err
		}},
		{"Evolution", func() error {
			_, err := Evolution([]Account{eurAccount, usdAccount}, nil, rng, Accounting)
			return err
		}},
		{"FindDivergent", func() error {
			early := valued(income("0", "A", day(1, 31), 1), day(2, 1))
			late := valued(dollars, day(2, 1))
			late.Date = day(1, 30)
			_, err := FindDivergent([]Transaction{early, late}, rng)
			return err
		}},
		{"Budgets", func() error {
			tx := dollars
			tx.Type, tx.Category = Expense, "home"
			_, err := Budgets([]Category{{ID: "home", Budget: EUR(500)}}, []Transaction{tx}, rng, Accounting)
			return err
		}},
		{"ProjectBudgets", func() error {
			_, err := ProjectBudgets([]Category{{ID: "home", Budget: EUR(500)}}, nil, []RecurringTransaction{rent}, rng, day(1, 1), Accounting)
			return err
		}},
		{"Project", func() error {
			_, err := Project(EUR(100), []RecurringTransaction{rent}, "A", rng)
			return err
		}},
		{"Validate", func() error {
			tx := transfer("t", "A", "C", day(1, 1), 10, 1)
			tx.TransferFee = usd(1)
			return tx.Validate()
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrCurrencyMismatch) {
				t.Errorf("%s error = %v, want %v", tc.name, err, ErrCurrencyMismatch)
			}
		})
	}
}

// Amounts read without a currency take the one of the other operand.
func TestCurrencyMismatch_WeakCurrency(t *testing.T) {
	tx := income("1", "A", day(1, 5), 10)
	tx.Amount = NO(10)
	got, err := BalanceAt(Account{ID: "A", Balance: usd(50)}, []Transaction{tx}, day(1, 1), Accounting)
	if err != nil {
		t.Fatalf("BalanceAt() error = %v", err)
	}
	if !got.Equal(usd(40)) {
		t.Errorf("BalanceAt() = %v, want %v", got, usd(40))
	}
}

func TestLedger_CheckCurrencies(t *testing.T) {
	dollars := expense("d", "A", day(1, 5), 10)
	dollars.Amount = usd(10)
	l := &Ledger{
		Accounts:     []Account{{ID: "A", Balance: EUR(100)}, {ID: "B", Balance: usd(50)}, {ID: "C", Balance: NO(0)}},
		Transactions: []Transaction{income("e", "A", day(1, 1), 10), dollars},
		Categories:   []Category{{ID: "food", Budget: usd(100)}},
	}
	err := l.Check()
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Check() error = %v, want %v", err, ErrCurrencyMismatch)
	}
	for _, want := range []string{"account B:", "transaction d:", "category food:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Check() error does not mention %q:\n%v", want, err)
		}
	}
	for _, unexpected := range []string{"account A:", "account C:", "transaction e:"} {
		if strings.Contains(err.Error(), unexpected) {
			t.Errorf("Check() error mentions %q:\n%v", unexpected, err)
		}
	}
}
