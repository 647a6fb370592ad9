package finance

import (
	"time"

	"github.com/etnz/finance/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to create a date in 2024.
func day(m time.Month, d int) date.Date { return date.New(2024, m, d) }

func income(id, account string, on date.Date, amount float64) Transaction {
	return Transaction{ID: id, Type: Income, Account: account, Date: on, Amount: EUR(amount), IncludeInStats: true}
}

func expense(id, account string, on date.Date, amount float64) Transaction {
	return Transaction{ID: id, Type: Expense, Account: account, Date: on, Amount: EUR(amount), IncludeInStats: true}
}

func transfer(id, from, to string, on date.Date, amount, fee float64) Transaction {
	return Transaction{ID: id, Type: Transfer, Account: from, TransferTo: to, Date: on, Amount: EUR(amount), TransferFee: EUR(fee), IncludeInStats: true}
}

// valued returns tx with a value date.
func valued(tx Transaction, on date.Date) Transaction {
	tx.ValueDate = on
	return tx
}
