package finance

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/finance/date"
)

// Effect returns the signed amount tx moves on account.
//
//	income:   source +amount
//	expense:  source -amount
//	transfer: source -(amount+fee), destination +amount
//
// The fee leaves the system: the effects of a transfer on both sides do not
// sum to zero. A transaction that does not touch account has no effect.
func Effect(tx Transaction, account string) (Money, error) {
	switch tx.Type {
	case Income:
		if tx.Account == account {
			return tx.Amount, nil
		}
	case Expense:
		if tx.Account == account {
			return tx.Amount.Neg(), nil
		}
	case Transfer:
		if tx.TransferTo == "" {
			return Money{}, fmt.Errorf("%w %s: transfer without destination account", ErrInvalidTransaction, tx.ID)
		}
		switch account {
		case tx.Account:
			return tx.Amount.Add(tx.TransferFee).Neg(), nil
		case tx.TransferTo:
			return tx.Amount, nil
		}
	default:
		return Money{}, fmt.Errorf("transaction %s: %w %q", tx.ID, ErrUnknownType, tx.Type)
	}
	return M(0, tx.Amount.Currency()), nil
}

// sortChronologically sorts txs by effective date, ties broken by id so
// that the order does not depend on how the slice was built.
func sortChronologically(txs []Transaction, field DateField) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.On(field).Compare(b.On(field)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Replay reconstructs the balance of one account at any date from its stored
// balance, the balance after every known transaction.
//
// A Replay is immutable once built and safe for concurrent use.
type Replay struct {
	account Account
	field   DateField
	txs     []Transaction // touching account, chronological
	effects []Money       // effects[i] is the effect of txs[i]
}

// NewReplay selects the transactions touching account, validates them and
// orders them chronologically according to field. txs is not modified.
func NewReplay(account Account, txs []Transaction, field DateField) (*Replay, error) {
	r := &Replay{account: account, field: field}
	for _, tx := range txs {
		if !tx.Touches(account.ID) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("cannot replay account %s: %w", account.ID, err)
		}
		if err := checkCurrency(account.Balance, tx.Amount); err != nil {
			return nil, fmt.Errorf("cannot replay account %s, transaction %s: %w", account.ID, tx.ID, err)
		}
		r.txs = append(r.txs, tx)
	}
	sortChronologically(r.txs, field)

	r.effects = make([]Money, len(r.txs))
	for i, tx := range r.txs {
		e, err := Effect(tx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("cannot replay account %s: %w", account.ID, err)
		}
		r.effects[i] = e
	}
	return r, nil
}

// Account returns the replayed account.
func (r *Replay) Account() Account { return r.account }

// Transactions returns the account's transactions in replay order.
func (r *Replay) Transactions() []Transaction { return slices.Clone(r.txs) }

// first returns the index of the first transaction on or after day.
func (r *Replay) first(day date.Date) int {
	i, _ := slices.BinarySearchFunc(r.txs, day, func(tx Transaction, d date.Date) int {
		if tx.On(r.field).Before(d) {
			return -1
		}
		return 1
	})
	return i
}

// BalanceAt returns the balance at the start of day on, before any of that
// day's transactions.
//
// It walks the history most recent first, reversing every transaction dated
// on or after on.
func (r *Replay) BalanceAt(on date.Date) Money {
	balance := r.account.Balance
	for i, stop := len(r.txs)-1, r.first(on); i >= stop; i-- {
		balance = balance.Sub(r.effects[i])
	}
	return balance
}

// ClosingBalance returns the balance at the end of day on.
func (r *Replay) ClosingBalance(on date.Date) Money { return r.BalanceAt(on.Add(1)) }

// BalancePoint is the balance around one transaction.
type BalancePoint struct {
	Date        date.Date
	Transaction *Transaction // nil for a point without transaction
	Before      Money
	After       Money
}

// Series returns one point per transaction whose effective date is in rng,
// chronologically, starting from the balance at rng.From.
//
// A window without any transaction yields a single point dated rng.To, whose
// Before and After both hold the balance at the end of the window; with an
// empty history that is the stored balance.
func (r *Replay) Series(rng date.Range) []BalancePoint {
	balance := r.BalanceAt(rng.From)
	var points []BalancePoint
	for i := r.first(rng.From); i < len(r.txs); i++ {
		on := r.txs[i].On(r.field)
		if on.After(rng.To) {
			break
		}
		before := balance
		balance = balance.Add(r.effects[i])
		points = append(points, BalancePoint{Date: on, Transaction: &r.txs[i], Before: before, After: balance})
	}
	if len(points) == 0 {
		points = append(points, BalancePoint{Date: rng.To, Before: balance, After: balance})
	}
	return points
}

// BalanceAt returns the balance of account at the start of day on.
func BalanceAt(account Account, txs []Transaction, on date.Date, field DateField) (Money, error) {
	r, err := NewReplay(account, txs, field)
	if err != nil {
		return Money{}, err
	}
	return r.BalanceAt(on), nil
}

// BalanceSeries returns the balance points of account in rng.
func BalanceSeries(account Account, txs []Transaction, rng date.Range, field DateField) ([]BalancePoint, error) {
	r, err := NewReplay(account, txs, field)
	if err != nil {
		return nil, err
	}
	return r.Series(rng), nil
}

// Reconcile replays the whole history from zero and reports whether it adds
// up to the stored balance. The difference, if any, is the opening balance
// the account was created with.
func Reconcile(account Account, txs []Transaction) (sum Money, ok bool, err error) {
	sum = M(0, account.Balance.Currency())
	for _, tx := range txs {
		if !tx.Touches(account.ID) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return sum, false, err
		}
		if err := checkCurrency(sum, tx.Amount); err != nil {
			return sum, false, fmt.Errorf("cannot reconcile account %s, transaction %s: %w", account.ID, tx.ID, err)
		}
		e, err := Effect(tx, account.ID)
		if err != nil {
			return sum, false, err
		}
		sum = sum.Add(e)
	}
	return sum, sum.Same(account.Balance), nil
}

// Evolution returns the total closing balance of accounts for every day in rng
// where at least one of them changed, plus both ends of rng.
func Evolution(accounts []Account, txs []Transaction, rng date.Range, field DateField) (*date.History[Money], error) {
	per := make([]*date.History[Money], 0, len(accounts))
	for _, acc := range accounts {
		r, err := NewReplay(acc, txs, field)
		if err != nil {
			return nil, err
		}
		h := new(date.History[Money])
		h.Append(rng.From, r.ClosingBalance(rng.From))
		for _, p := range r.Series(rng) {
			h.Append(p.Date, p.After)
		}
		h.Append(rng.To, r.ClosingBalance(rng.To))
		per = append(per, h)
	}

	total := new(date.History[Money])
	for day := range date.Iterate(per...) {
		sum := Money{}
		for _, h := range per {
			v, ok := h.ValueAsOf(day)
			if !ok {
				// every history starts at rng.From
				continue
			}
			if err := checkCurrency(sum, v); err != nil {
				return nil, fmt.Errorf("cannot sum the balances of all accounts: %w", err)
			}
			sum = sum.Add(v)
		}
		total.Append(day, sum)
	}
	return total, nil
}
