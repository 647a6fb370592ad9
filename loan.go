package finance

import (
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// LoanKind is the repayment profile of a loan.
type LoanKind string

const (
	// Amortizable loans are repaid with constant payments, interest first.
	Amortizable LoanKind = "amortizable"
	// Bullet loans only pay interest, the principal is repaid with the last payment.
	Bullet LoanKind = "bullet"
)

// ParseLoanKind parses a loan kind.
func ParseLoanKind(s string) (LoanKind, error) {
	switch k := LoanKind(strings.ToLower(s)); k {
	case Amortizable, Bullet:
		return k, nil
	}
	return "", fmt.Errorf("unknown loan kind %q, want amortizable or bullet", s)
}

// Frequency is a payment frequency in months.
type Frequency int

const (
	EveryMonth    Frequency = 1
	EveryQuarter  Frequency = 3
	EverySemester Frequency = 6
	EveryYear     Frequency = 12
)

// ParseFrequency parses monthly, quarterly, semi_annual or annual.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "monthly":
		return EveryMonth, nil
	case "quarterly":
		return EveryQuarter, nil
	case "semi_annual", "semi-annual", "semiannual":
		return EverySemester, nil
	case "annual", "yearly":
		return EveryYear, nil
	}
	return 0, fmt.Errorf("unknown payment frequency %q", s)
}

func (f Frequency) String() string {
	switch f {
	case EveryMonth:
		return "monthly"
	case EveryQuarter:
		return "quarterly"
	case EverySemester:
		return "semi_annual"
	case EveryYear:
		return "annual"
	}
	return fmt.Sprintf("every %d months", int(f))
}

// LoanPayment is one line of an amortization table.
type LoanPayment struct {
	Period    int
	Date      date.Date
	Payment   Money
	Principal Money
	Interest  Money
	Remaining Money
}

// Loan is a loan with its full repayment schedule.
type Loan struct {
	Kind          LoanKind
	Principal     Money
	Rate          decimal.Decimal // annual, in percent
	Months        int
	Frequency     Frequency
	Payment       Money // regular payment
	TotalInterest Money
	Schedule      []LoanPayment
}

// Total returns the principal plus all interests.
func (l Loan) Total() Money { return l.Principal.Add(l.TotalInterest) }

var hundred = decimal.NewFromInt(100)

// Amortize computes the repayment schedule of a loan of principal over months,
// paid every freq, the first payment one period after start.
//
// Payments are rounded to the currency's smallest unit; the last payment
// absorbs the rounding so that the remaining principal ends at exactly zero.
func Amortize(principal Money, annualRate decimal.Decimal, months int, freq Frequency, kind LoanKind, start date.Date) (Loan, error) {
	switch {
	case !principal.IsPositive():
		return Loan{}, fmt.Errorf("loan principal must be positive, got %s", principal)
	case annualRate.IsNegative():
		return Loan{}, fmt.Errorf("loan rate must not be negative, got %s%%", annualRate)
	case months <= 0:
		return Loan{}, fmt.Errorf("loan duration must be positive, got %d months", months)
	case freq <= 0:
		return Loan{}, fmt.Errorf("invalid payment frequency %d", int(freq))
	}
	l := Loan{Kind: kind, Principal: principal, Rate: annualRate, Months: months, Frequency: freq}
	cur := principal.Currency()

	n := (months + int(freq) - 1) / int(freq)
	rate := annualRate.Div(hundred).Mul(decimal.NewFromInt(int64(freq))).Div(decimal.NewFromInt(12))
	interestOn := func(remaining Money) Money { return Money{value: remaining.value.Mul(rate), cur: cur}.Round() }

	switch kind {
	case Amortizable:
		if rate.IsZero() {
			l.Payment = Money{value: principal.value.Div(decimal.NewFromInt(int64(n))), cur: cur}.Round()
		} else {
			growth := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(n)))
			l.Payment = Money{value: principal.value.Mul(rate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))), cur: cur}.Round()
		}
	case Bullet:
		l.Payment = interestOn(principal)
	default:
		return Loan{}, fmt.Errorf("unknown loan kind %q", kind)
	}

	remaining, total := principal, M(0, cur)
	for i := 1; i <= n; i++ {
		interest := interestOn(remaining)
		var part Money
		switch {
		case i == n:
			part = remaining
		case kind == Bullet:
			part = M(0, cur)
		default:
			part = l.Payment.Sub(interest)
		}
		remaining = remaining.Sub(part)
		total = total.Add(interest)
		l.Schedule = append(l.Schedule, LoanPayment{
			Period:    i,
			Date:      start.AddMonths(i * int(freq)),
			Payment:   part.Add(interest),
			Principal: part,
			Interest:  interest,
			Remaining: remaining,
		})
	}
	l.TotalInterest = total
	return l, nil
}
