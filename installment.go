package finance

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// InstallmentPlan is a purchase paid in fixed installments.
type InstallmentPlan struct {
	ID          string
	Description string
	Account     string
	Category    string
	Total       Money
	Installment Money
	Remaining   Money
	Frequency   date.Period
	Start       date.Date
	NextPayment date.Date
	Active      bool
}

// Validate checks the plan invariants.
func (p InstallmentPlan) Validate() error {
	switch {
	case !p.Installment.IsPositive():
		return fmt.Errorf("installment plan %s: installment amount must be positive, got %s", p.ID, p.Installment)
	case p.Remaining.IsNegative() || p.Remaining.GreaterThan(p.Total):
		return fmt.Errorf("installment plan %s: remaining amount %s out of [0, %s]", p.ID, p.Remaining, p.Total)
	case !p.Frequency.Valid():
		return fmt.Errorf("installment plan %s: %w %d", p.ID, ErrUnknownRecurrence, int(p.Frequency))
	case p.NextPayment.IsZero() && p.Start.IsZero():
		return fmt.Errorf("installment plan %s: missing start date", p.ID)
	}
	return nil
}

// Paid returns the amount already paid.
func (p InstallmentPlan) Paid() Money { return p.Total.Sub(p.Remaining) }

// Installment is one remaining payment of a plan.
type Installment struct {
	Date      date.Date
	Amount    Money
	Remaining Money // after this payment
}

// Schedule lists the remaining payments, from the next payment date. The
// last one is partial when the remaining amount is not a multiple of the
// installment.
func (p InstallmentPlan) Schedule() ([]Installment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	next := p.NextPayment
	if next.IsZero() {
		next = p.Start
	}
	var payments []Installment
	remaining := p.Remaining
	for k := 0; remaining.IsPositive(); k++ {
		amount := p.Installment
		if remaining.LessThan(amount) {
			amount = remaining
		}
		remaining = remaining.Sub(amount)
		payments = append(payments, Installment{Date: next.Step(p.Frequency, k), Amount: amount, Remaining: remaining})
	}
	return payments, nil
}

// Recurring returns the recurring expense that pays the plan.
func (p InstallmentPlan) Recurring() RecurringTransaction {
	next := p.NextPayment
	if next.IsZero() {
		next = p.Start
	}
	rt := RecurringTransaction{
		ID:          p.ID,
		Type:        Expense,
		Amount:      p.Installment,
		Account:     p.Account,
		Category:    p.Category,
		Description: p.Description,
		Recurrence:  p.Frequency,
		Start:       p.Start,
		NextDue:     next,
		Active:      p.Active && p.Remaining.IsPositive(),
		Installment: p.ID,
	}
	if rt.Start.IsZero() {
		rt.Start = next
	}
	if s, err := p.Schedule(); err == nil && len(s) > 0 {
		rt.End = s[len(s)-1].Date
	}
	return rt
}

func (p InstallmentPlan) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", p.ID)
	w.Append("description", p.Description)
	w.Append("account_id", p.Account)
	w.Optional("category_id", p.Category)
	w.Append("total_amount", p.Total.value)
	w.Append("installment_amount", p.Installment.value)
	w.Append("remaining_amount", p.Remaining.value)
	w.Optional("currency", p.Total.Currency())
	w.Append("frequency", p.Frequency)
	w.Optional("start_date", p.Start)
	w.Optional("next_payment_date", p.NextPayment)
	w.Append("is_active", p.Active)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a plan, is_active defaults to true and a missing
// remaining amount means nothing was paid yet.
func (p *InstallmentPlan) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string           `json:"id"`
		Description string           `json:"description"`
		Account     string           `json:"account_id"`
		Category    *string          `json:"category_id"`
		Total       decimal.Decimal  `json:"total_amount"`
		Installment decimal.Decimal  `json:"installment_amount"`
		Remaining   *decimal.Decimal `json:"remaining_amount"`
		Currency    string           `json:"currency"`
		Frequency   string           `json:"frequency"`
		Start       date.Date        `json:"start_date"`
		NextPayment date.Date        `json:"next_payment_date"`
		Active      *bool            `json:"is_active"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	freq, err := date.ParsePeriod(temp.Frequency)
	if err != nil {
		return fmt.Errorf("%w %q", ErrUnknownRecurrence, temp.Frequency)
	}
	remaining := temp.Total
	if temp.Remaining != nil {
		remaining = *temp.Remaining
	}
	*p = InstallmentPlan{
		ID:          temp.ID,
		Description: temp.Description,
		Account:     temp.Account,
		Category:    deref(temp.Category),
		Total:       M(temp.Total, temp.Currency),
		Installment: M(temp.Installment, temp.Currency),
		Remaining:   M(remaining, temp.Currency),
		Frequency:   freq,
		Start:       temp.Start,
		NextPayment: temp.NextPayment,
		Active:      temp.Active == nil || *temp.Active,
	}
	return nil
}
