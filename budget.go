package finance

import (
	"fmt"

	"github.com/etnz/finance/date"
)

// BudgetStatus compares the spending of a category to its budget.
type BudgetStatus struct {
	Category  Category
	Spent     Money   // expenses included in stats, in the period
	Projected Money   // pending recurring expenses still to come in the period
	Ratio     Percent // Spent over budget
}

// Forecast returns what the category will have spent at the end of the period.
func (b BudgetStatus) Forecast() Money { return b.Spent.Add(b.Projected) }

// Exceeded reports whether the spending is over budget.
func (b BudgetStatus) Exceeded() bool { return b.Spent.GreaterThan(b.Category.Budget) }

// WillExceed reports whether the forecast is over budget.
func (b BudgetStatus) WillExceed() bool { return b.Forecast().GreaterThan(b.Category.Budget) }

// Budgets returns the status of every category with a budget over rng.
func Budgets(categories []Category, txs []Transaction, rng date.Range, field DateField) ([]BudgetStatus, error) {
	var statuses []BudgetStatus
	index := make(map[string]int)
	for _, c := range categories {
		if c.Budget.IsZero() {
			continue
		}
		index[c.ID] = len(statuses)
		statuses = append(statuses, BudgetStatus{Category: c, Spent: M(0, c.Budget.Currency()), Projected: M(0, c.Budget.Currency())})
	}
	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok || tx.Type != Expense || !tx.IncludeInStats || !rng.Contains(tx.On(field)) {
			continue
		}
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		if err := checkCurrency(statuses[i].Spent, tx.Amount); err != nil {
			return nil, fmt.Errorf("category %s, transaction %s: %w", tx.Category, tx.ID, err)
		}
		statuses[i].Spent = statuses[i].Spent.Add(tx.Amount)
	}
	for i := range statuses {
		statuses[i].Ratio = statuses[i].Spent.Ratio(statuses[i].Category.Budget)
	}
	return statuses, nil
}

// ProjectBudgets is like Budgets, and adds the recurring expenses of each
// category pending between today and the end of rng.
func ProjectBudgets(categories []Category, txs []Transaction, recurring []RecurringTransaction, rng date.Range, today date.Date, field DateField) ([]BudgetStatus, error) {
	statuses, err := Budgets(categories, txs, rng, field)
	if err != nil {
		return nil, err
	}
	ahead := date.Range{From: rng.From, To: rng.To}
	if ahead.From.Before(today) {
		ahead.From = today
	}
	for i := range statuses {
		for _, rt := range recurring {
			if rt.Type != Expense || rt.Category != statuses[i].Category.ID {
				continue
			}
			s, err := Pending(rt, ahead)
			if err != nil {
				return nil, err
			}
			if err := checkCurrency(statuses[i].Projected, rt.Amount); err != nil {
				return nil, fmt.Errorf("category %s, recurring transaction %s: %w", rt.Category, rt.ID, err)
			}
			for range s.Dates {
				statuses[i].Projected = statuses[i].Projected.Add(rt.Amount)
			}
		}
	}
	return statuses, nil
}
