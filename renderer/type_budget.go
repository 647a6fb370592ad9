package renderer

import (
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Budgets is the budget consumption of the categories over a period.
type Budgets struct {
	From       date.Date    `json:"from"`
	To         date.Date    `json:"to"`
	Categories []BudgetLine `json:"categories"`
}

// BudgetLine is one category with a budget.
type BudgetLine struct {
	Name      string          `json:"name"`
	Budget    finance.Money   `json:"budget"`
	Spent     finance.Money   `json:"spent"`
	Ratio     finance.Percent `json:"ratio"`
	Projected finance.Money   `json:"projected"`
	Status    string          `json:"status"`
}

func NewBudgets(rng date.Range, statuses []finance.BudgetStatus) *Budgets {
	b := &Budgets{From: rng.From, To: rng.To}
	for _, s := range statuses {
		status := "ok"
		switch {
		case s.Exceeded():
			status = "over"
		case s.WillExceed():
			status = "at risk"
		}
		name := s.Category.Name
		if name == "" {
			name = s.Category.ID
		}
		b.Categories = append(b.Categories, BudgetLine{
			Name:      cell(name),
			Budget:    s.Category.Budget,
			Spent:     s.Spent,
			Ratio:     s.Ratio,
			Projected: s.Projected,
			Status:    status,
		})
	}
	return b
}

// Loan is a loan and its amortization table.
type Loan struct {
	Kind          string        `json:"kind"`
	Principal     finance.Money `json:"principal"`
	Rate          string        `json:"rate"`
	Months        int           `json:"months"`
	Frequency     string        `json:"frequency"`
	Payment       finance.Money `json:"payment"`
	TotalInterest finance.Money `json:"totalInterest"`
	Total         finance.Money `json:"total"`
	Payments      []LoanLine    `json:"payments"`
}

// LoanLine is one payment.
type LoanLine struct {
	Period    int           `json:"period"`
	Date      date.Date     `json:"date"`
	Payment   finance.Money `json:"payment"`
	Principal finance.Money `json:"principal"`
	Interest  finance.Money `json:"interest"`
	Remaining finance.Money `json:"remaining"`
}

func NewLoan(l finance.Loan) *Loan {
	v := &Loan{
		Kind:          string(l.Kind),
		Principal:     l.Principal,
		Rate:          l.Rate.String(),
		Months:        l.Months,
		Frequency:     l.Frequency.String(),
		Payment:       l.Payment,
		TotalInterest: l.TotalInterest,
		Total:         l.Total(),
	}
	for _, p := range l.Schedule {
		v.Payments = append(v.Payments, LoanLine{
			Period:    p.Period,
			Date:      p.Date,
			Payment:   p.Payment,
			Principal: p.Principal,
			Interest:  p.Interest,
			Remaining: p.Remaining,
		})
	}
	return v
}

// Installments lists the installment plans.
type Installments struct {
	Plans []InstallmentLine `json:"plans"`
}

// InstallmentLine is one plan, Left counts the remaining payments, the last
// one on Last.
type InstallmentLine struct {
	Description string        `json:"description"`
	Account     string        `json:"account"`
	Total       finance.Money `json:"total"`
	Paid        finance.Money `json:"paid"`
	Remaining   finance.Money `json:"remaining"`
	Installment finance.Money `json:"installment"`
	Frequency   string        `json:"frequency"`
	Next        date.Date     `json:"next"`
	Left        int           `json:"left"`
	Last        date.Date     `json:"last"`
}

func NewInstallments(plans []finance.InstallmentPlan, accounts []finance.Account) (*Installments, error) {
	names := namesOf(accounts)
	v := new(Installments)
	for _, p := range plans {
		s, err := p.Schedule()
		if err != nil {
			return nil, err
		}
		line := InstallmentLine{
			Description: cell(p.Description),
			Account:     names.of(p.Account),
			Total:       p.Total,
			Paid:        p.Paid(),
			Remaining:   p.Remaining,
			Installment: p.Installment,
			Frequency:   p.Frequency.String(),
			Left:        len(s),
		}
		if line.Description == "" {
			line.Description = cell(p.ID)
		}
		if len(s) > 0 {
			line.Next, line.Last = s[0].Date, s[len(s)-1].Date
		}
		v.Plans = append(v.Plans, line)
	}
	return v, nil
}
