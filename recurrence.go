package finance

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/finance/date"
)

// MaxOccurrences bounds the number of dates a single schedule emits.
const MaxOccurrences = 100

// Schedule is the list of occurrence dates of a recurring transaction in a range.
type Schedule struct {
	Recurring RecurringTransaction
	Dates     []date.Date
	// Truncated is set when MaxOccurrences stopped the enumeration before the
	// end of the range.
	Truncated bool
}

// Occurrences enumerates the dates of rt in rng, counting from its start date.
//
// Occurrence k is the start date stepped k times in one move, so month ends
// clamp without drifting (Jan 31, Feb 29, Mar 31, Apr 30). Occurrences before
// rng.From are skipped, none is emitted after rng.To or rt.End. An inactive
// recurrence has no occurrence.
func Occurrences(rt RecurringTransaction, rng date.Range) (Schedule, error) {
	return enumerate(rt, rt.Start, rng)
}

// Pending is like Occurrences but counts from the next due date: the
// occurrences not yet materialized as transactions.
func Pending(rt RecurringTransaction, rng date.Range) (Schedule, error) {
	anchor := rt.NextDue
	if anchor.IsZero() {
		anchor = rt.Start
	}
	return enumerate(rt, anchor, rng)
}

func enumerate(rt RecurringTransaction, anchor date.Date, rng date.Range) (Schedule, error) {
	s := Schedule{Recurring: rt}
	if err := rt.Validate(); err != nil {
		return s, err
	}
	if !rt.Active || rng.IsEmpty() {
		return s, nil
	}

	step := rt.Recurrence
	k := skip(anchor, step, rng.From)
	for ; ; k++ {
		on := anchor.Step(step, k)
		if on.After(rng.To) || (!rt.End.IsZero() && on.After(rt.End)) {
			return s, nil
		}
		if len(s.Dates) == MaxOccurrences {
			s.Truncated = true
			return s, nil
		}
		s.Dates = append(s.Dates, on)
	}
}

// longestStep is the maximum length in days of one step.
var longestStep = map[date.Period]int{date.Daily: 1, date.Weekly: 7, date.Monthly: 31, date.Quarterly: 92, date.Yearly: 366}

// skip returns the index of the first occurrence on or after from.
func skip(anchor date.Date, step date.Period, from date.Date) int {
	days := anchor.DaysUntil(from)
	if days <= 0 {
		return 0
	}
	// k steps never span more than k times the longest step: k is a lower bound.
	k := days / longestStep[step]
	for anchor.Step(step, k).Before(from) {
		k++
	}
	return k
}

// ProjectedPoint is the projected balance after one pending occurrence.
type ProjectedPoint struct {
	Date      date.Date
	Recurring RecurringTransaction
	Amount    Money // signed
	Balance   Money
}

// Projection is the expected balance trajectory of one account.
type Projection struct {
	Account   string
	Range     date.Range
	Opening   Money
	Points    []ProjectedPoint
	Balances  *date.History[Money] // balance at the end of each day with a change, and at both ends
	Truncated []RecurringTransaction
}

// Closing returns the projected balance at the end of the range.
func (p *Projection) Closing() Money {
	_, v := p.Balances.Latest()
	return v
}

// Project applies the pending occurrences of the active recurring
// transactions of account in rng to the opening balance.
//
// Occurrences on the same day are applied in recurring id order.
func Project(opening Money, recurring []RecurringTransaction, account string, rng date.Range) (*Projection, error) {
	p := &Projection{Account: account, Range: rng, Opening: opening, Balances: new(date.History[Money])}
	for _, rt := range recurring {
		if rt.Account != account {
			continue
		}
		if err := checkCurrency(opening, rt.Amount); err != nil {
			return nil, fmt.Errorf("cannot project account %s, recurring transaction %s: %w", account, rt.ID, err)
		}
		s, err := Pending(rt, rng)
		if err != nil {
			return nil, err
		}
		if s.Truncated {
			p.Truncated = append(p.Truncated, rt)
		}
		for _, on := range s.Dates {
			p.Points = append(p.Points, ProjectedPoint{Date: on, Recurring: rt, Amount: rt.signed()})
		}
	}
	slices.SortStableFunc(p.Points, func(a, b ProjectedPoint) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Recurring.ID, b.Recurring.ID)
	})

	balance := opening
	p.Balances.Append(rng.From, balance)
	for i := range p.Points {
		balance = balance.Add(p.Points[i].Amount)
		p.Points[i].Balance = balance
		p.Balances.Append(p.Points[i].Date, balance)
	}
	p.Balances.Append(rng.To, balance)
	return p, nil
}

// CalendarDay is one cell of the recurring transactions calendar.
type CalendarDay struct {
	Date date.Date
	Due  []RecurringTransaction
	Past bool // before today
}

// Calendar returns every day of the month containing month, with the
// recurring transactions occurring that day.
func Calendar(recurring []RecurringTransaction, month date.Date, today date.Date) ([]CalendarDay, error) {
	rng := date.NewRange(month, date.Monthly)
	days := make([]CalendarDay, 0, rng.Len())
	for d := range rng.Days() {
		days = append(days, CalendarDay{Date: d, Past: d.Before(today)})
	}
	for _, rt := range recurring {
		s, err := Occurrences(rt, rng)
		if err != nil {
			return nil, err
		}
		for _, on := range s.Dates {
			i := rng.From.DaysUntil(on)
			days[i].Due = append(days[i].Due, rt)
		}
	}
	return days, nil
}

// DueItem is a recurring transaction waiting to be materialized.
type DueItem struct {
	Recurring RecurringTransaction
	Date      date.Date
	Days      int // from today, negative when overdue
}

// DueReport lists the overdue and upcoming recurring transactions.
type DueReport struct {
	Today    date.Date
	Overdue  []DueItem
	Upcoming []DueItem
}

// Due returns the active recurring transactions whose next due date is
// before today (overdue) or within horizon days from today (upcoming).
func Due(recurring []RecurringTransaction, today date.Date, horizon int) (DueReport, error) {
	r := DueReport{Today: today}
	for _, rt := range recurring {
		if err := rt.Validate(); err != nil {
			return DueReport{}, err
		}
		if !rt.Active {
			continue
		}
		next := rt.NextDue
		if next.IsZero() {
			next = rt.Start
		}
		if !rt.End.IsZero() && next.After(rt.End) {
			continue
		}
		item := DueItem{Recurring: rt, Date: next, Days: today.DaysUntil(next)}
		switch {
		case item.Days < 0:
			r.Overdue = append(r.Overdue, item)
		case item.Days <= horizon:
			r.Upcoming = append(r.Upcoming, item)
		}
	}
	byDate := func(a, b DueItem) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Recurring.ID, b.Recurring.ID)
	}
	slices.SortFunc(r.Overdue, byDate)
	slices.SortFunc(r.Upcoming, byDate)
	return r, nil
}
