package finance

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Ledger is the whole data set of a user: accounts, their transactions, the
// recurring transactions, categories and installment plans.
//
// Transactions are kept in chronological order of their accounting date.
type Ledger struct {
	Accounts     []Account
	Transactions []Transaction
	Recurring    []RecurringTransaction
	Categories   []Category
	Installments []InstallmentPlan
}

// Account returns the account with this id, or nil if unknown.
func (l *Ledger) Account(id string) *Account {
	i := slices.IndexFunc(l.Accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return nil
	}
	return &l.Accounts[i]
}

// FindAccount returns the account whose id or name matches query, names are
// matched case insensitively.
func (l *Ledger) FindAccount(query string) (*Account, error) {
	if a := l.Account(query); a != nil {
		return a, nil
	}
	var found *Account
	for i, a := range l.Accounts {
		if strings.EqualFold(a.Name, query) {
			if found != nil {
				return nil, fmt.Errorf("several accounts are named %q, use the account id", query)
			}
			found = &l.Accounts[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("unknown account %q", query)
	}
	return found, nil
}

// Category returns the category with this id, or nil if unknown.
func (l *Ledger) Category(id string) *Category {
	i := slices.IndexFunc(l.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return nil
	}
	return &l.Categories[i]
}

// Transaction returns the transaction with this id, or nil if unknown.
func (l *Ledger) Transaction(id string) *Transaction {
	i := slices.IndexFunc(l.Transactions, func(tx Transaction) bool { return tx.ID == id })
	if i < 0 {
		return nil
	}
	return &l.Transactions[i]
}

// SetCurrency gives currency cur to every amount read without one.
//
// Amounts of a transaction take the currency of their account first.
func (l *Ledger) SetCurrency(cur string) {
	for i := range l.Accounts {
		l.Accounts[i].Balance = l.Accounts[i].Balance.WithCurrency(cur)
	}
	currencyOf := func(account string) string {
		if a := l.Account(account); a != nil {
			return a.Balance.Currency()
		}
		return cur
	}
	for i := range l.Transactions {
		tx := &l.Transactions[i]
		c := currencyOf(tx.Account)
		tx.Amount = tx.Amount.WithCurrency(c)
		tx.TransferFee = tx.TransferFee.WithCurrency(c)
		tx.RefundedAmount = tx.RefundedAmount.WithCurrency(c)
	}
	for i := range l.Recurring {
		rt := &l.Recurring[i]
		rt.Amount = rt.Amount.WithCurrency(currencyOf(rt.Account))
	}
	for i := range l.Categories {
		l.Categories[i].Budget = l.Categories[i].Budget.WithCurrency(cur)
	}
	for i := range l.Installments {
		p := &l.Installments[i]
		c := currencyOf(p.Account)
		p.Total, p.Installment, p.Remaining = p.Total.WithCurrency(c), p.Installment.WithCurrency(c), p.Remaining.WithCurrency(c)
	}
}

// AllRecurring returns the recurring transactions, plus one for each active
// installment plan not already paid by a recurring transaction.
func (l *Ledger) AllRecurring() []RecurringTransaction {
	all := slices.Clone(l.Recurring)
	for _, p := range l.Installments {
		if slices.ContainsFunc(l.Recurring, func(rt RecurringTransaction) bool { return rt.Installment == p.ID }) {
			continue
		}
		all = append(all, p.Recurring())
	}
	return all
}

// Refunded returns the sum of the refunds of transaction id.
func (l *Ledger) Refunded(id string) Money {
	var sum Money
	for _, tx := range l.Transactions {
		if tx.RefundOf == id {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// Check validates every record and the references between them. All the
// problems found are returned joined.
func (l *Ledger) Check() error {
	var errs []error
	seen := make(map[string]bool)
	unique := func(kind, id string) {
		key := kind + ":" + id
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
		}
		seen[key] = true
	}
	account := func(owner, id string) {
		if l.Account(id) == nil {
			errs = append(errs, fmt.Errorf("%s references unknown account %q", owner, id))
		}
	}
	category := func(owner, id string) {
		if id != "" && l.Category(id) == nil {
			errs = append(errs, fmt.Errorf("%s references unknown category %q", owner, id))
		}
	}
	// Reports sum all accounts together, they must share one currency.
	var base Money
	currency := func(owner string, m Money) {
		if err := checkCurrency(base, m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", owner, err))
		}
	}

	for _, a := range l.Accounts {
		unique("account", a.ID)
		currency("account "+a.ID, a.Balance)
		if base.Currency() == "" {
			base = a.Balance
		}
	}
	for _, c := range l.Categories {
		unique("category", c.ID)
		currency("category "+c.ID, c.Budget)
		if c.Budget.IsNegative() {
			errs = append(errs, fmt.Errorf("category %s has a negative budget", c.ID))
		}
	}
	for _, tx := range l.Transactions {
		owner := "transaction " + tx.ID
		unique("transaction", tx.ID)
		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		account(owner, tx.Account)
		if tx.Type == Transfer {
			account(owner, tx.TransferTo)
		}
		currency(owner, tx.Amount)
		category(owner, tx.Category)
		if tx.RefundOf != "" {
			switch orig := l.Transaction(tx.RefundOf); {
			case orig == nil:
				errs = append(errs, fmt.Errorf("%s refunds unknown transaction %q", owner, tx.RefundOf))
			case orig.Type != Expense || tx.Type != Income:
				errs = append(errs, fmt.Errorf("%s: only an income can refund an expense", owner))
			}
		}
		if !tx.RefundedAmount.IsZero() {
			if refunded := l.Refunded(tx.ID); !refunded.Same(tx.RefundedAmount) {
				errs = append(errs, fmt.Errorf("%s: refunded amount %s but refunds sum up to %s", owner, tx.RefundedAmount, refunded))
			}
		}
	}
	for _, rt := range l.Recurring {
		owner := "recurring transaction " + rt.ID
		unique("recurring", rt.ID)
		if err := rt.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		account(owner, rt.Account)
		category(owner, rt.Category)
		currency(owner, rt.Amount)
	}
	for _, p := range l.Installments {
		owner := "installment plan " + p.ID
		unique("installment", p.ID)
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		account(owner, p.Account)
		category(owner, p.Category)
		currency(owner, p.Total)
	}
	return errors.Join(errs...)
}
