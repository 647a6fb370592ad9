package finance

import (
	"testing"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

func TestAmortize(t *testing.T) {
	testCases := []struct {
		name      string
		principal Money
		rate      float64
		months    int
		freq      Frequency
		kind      LoanKind
		payments  int
		payment   Money
	}{
		{"monthly", EUR(10000), 5, 12, EveryMonth, Amortizable, 12, EUR(856.07)},
		{"no interest", EUR(1000), 0, 3, EveryMonth, Amortizable, 3, EUR(333.33)},
		{"quarterly", EUR(10000), 4, 24, EveryQuarter, Amortizable, 8, EUR(1306.90)},
		{"partial last period", EUR(1200), 0, 7, EveryQuarter, Amortizable, 3, EUR(400)},
		{"bullet", EUR(10000), 6, 12, EveryMonth, Bullet, 12, EUR(50)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Amortize(tc.principal, decimal.NewFromFloat(tc.rate), tc.months, tc.freq, tc.kind, day(1, 15))
			if err != nil {
				t.Fatalf("Amortize() error = %v", err)
			}
			if len(l.Schedule) != tc.payments {
				t.Fatalf("Amortize() has %d payments, want %d", len(l.Schedule), tc.payments)
			}
			if !l.Payment.Equal(tc.payment) {
				t.Errorf("Amortize().Payment = %v, want %v", l.Payment, tc.payment)
			}

			principal, interest := M(0, "EUR"), M(0, "EUR")
			for _, p := range l.Schedule {
				principal = principal.Add(p.Principal)
				interest = interest.Add(p.Interest)
				if !p.Payment.Equal(p.Principal.Add(p.Interest)) {
					t.Errorf("payment %d: %v != %v + %v", p.Period, p.Payment, p.Principal, p.Interest)
				}
			}
			if !principal.Equal(tc.principal) {
				t.Errorf("principal repaid = %v, want %v", principal, tc.principal)
			}
			if !interest.Equal(l.TotalInterest) {
				t.Errorf("interest paid = %v, want %v", interest, l.TotalInterest)
			}
			if last := l.Schedule[len(l.Schedule)-1]; !last.Remaining.IsZero() {
				t.Errorf("last remaining = %v, want 0", last.Remaining)
			}
		})
	}
}

func TestAmortize_Dates(t *testing.T) {
	l, err := Amortize(EUR(1000), decimal.NewFromInt(3), 9, EveryQuarter, Amortizable, day(1, 31))
	if err != nil {
		t.Fatal(err)
	}
	want := []date.Date{day(4, 30), day(7, 31), day(10, 31)}
	for i, p := range l.Schedule {
		if p.Date != want[i] {
			t.Errorf("payment %d on %v, want %v", i+1, p.Date, want[i])
		}
	}
}

func TestAmortize_Invalid(t *testing.T) {
	if _, err := Amortize(EUR(0), decimal.NewFromInt(3), 12, EveryMonth, Amortizable, day(1, 1)); err == nil {
		t.Errorf("Amortize() accepted a zero principal")
	}
	if _, err := Amortize(EUR(100), decimal.NewFromInt(-1), 12, EveryMonth, Amortizable, day(1, 1)); err == nil {
		t.Errorf("Amortize() accepted a negative rate")
	}
	if _, err := Amortize(EUR(100), decimal.NewFromInt(1), 0, EveryMonth, Amortizable, day(1, 1)); err == nil {
		t.Errorf("Amortize() accepted a zero duration")
	}
}

func TestParseFrequency(t *testing.T) {
	for in, want := range map[string]Frequency{"monthly": EveryMonth, "quarterly": EveryQuarter, "semi_annual": EverySemester, "annual": EveryYear} {
		got, err := ParseFrequency(in)
		if err != nil || got != want {
			t.Errorf("ParseFrequency(%q) = %v, %v, want %v", in, got, err, want)
		}
		if got.String() != in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), in)
		}
	}
	if _, err := ParseFrequency("fortnightly"); err == nil {
		t.Errorf("ParseFrequency() accepted an unknown frequency")
	}
}
