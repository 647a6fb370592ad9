package renderer

import (
	"time"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Projection is the expected balance of an account.
type Projection struct {
	Account   string          `json:"account"`
	From      date.Date       `json:"from"`
	To        date.Date       `json:"to"`
	Opening   finance.Money   `json:"opening"`
	Closing   finance.Money   `json:"closing"`
	Points    []ProjectedLine `json:"points"`
	Truncated []string        `json:"truncated"`
}

// ProjectedLine is the balance after one scheduled occurrence.
type ProjectedLine struct {
	Date        date.Date     `json:"date"`
	Description string        `json:"description"`
	Amount      finance.Money `json:"amount"`
	Balance     finance.Money `json:"balance"`
}

func NewProjection(p *finance.Projection, account finance.Account) *Projection {
	v := &Projection{
		Account: namesOf([]finance.Account{account}).of(account.ID),
		From:    p.Range.From,
		To:      p.Range.To,
		Opening: p.Opening,
		Closing: p.Closing(),
	}
	for _, pt := range p.Points {
		v.Points = append(v.Points, ProjectedLine{Date: pt.Date, Description: describeRecurring(pt.Recurring), Amount: pt.Amount, Balance: pt.Balance})
	}
	for _, rt := range p.Truncated {
		v.Truncated = append(v.Truncated, describeRecurring(rt))
	}
	return v
}

// Occurrences lists the dates of recurring transactions in a period.
type Occurrences struct {
	From      date.Date      `json:"from"`
	To        date.Date      `json:"to"`
	Schedules []ScheduleLine `json:"schedules"`
}

// ScheduleLine is one recurring transaction and its dates.
type ScheduleLine struct {
	Description string        `json:"description"`
	Account     string        `json:"account"`
	Recurrence  string        `json:"recurrence"`
	Amount      finance.Money `json:"amount"`
	Dates       []date.Date   `json:"dates"`
	Truncated   bool          `json:"truncated"`
}

func NewOccurrences(rng date.Range, schedules []finance.Schedule, accounts []finance.Account) *Occurrences {
	names := namesOf(accounts)
	o := &Occurrences{From: rng.From, To: rng.To}
	for _, s := range schedules {
		o.Schedules = append(o.Schedules, ScheduleLine{
			Description: describeRecurring(s.Recurring),
			Account:     names.of(s.Recurring.Account),
			Recurrence:  s.Recurring.Recurrence.String(),
			Amount:      signed(s.Recurring),
			Dates:       s.Dates,
			Truncated:   s.Truncated,
		})
	}
	return o
}

// Calendar is a month grid, weeks start on Monday.
type Calendar struct {
	Month string         `json:"month"`
	Weeks [][]string     `json:"weeks"`
	Items []CalendarItem `json:"items"`
}

// CalendarItem is one occurrence in the month.
type CalendarItem struct {
	Date        date.Date     `json:"date"`
	Description string        `json:"description"`
	Amount      finance.Money `json:"amount"`
	Past        bool          `json:"past"`
}

// NewCalendar lays out days, the days with an occurrence are in bold.
func NewCalendar(days []finance.CalendarDay) *Calendar {
	c := new(Calendar)
	if len(days) == 0 {
		return c
	}
	c.Month = days[0].Date.Format("January 2006")
	week := make([]string, (days[0].Date.Weekday()+6)%7)
	for _, d := range days {
		label := d.Date.Format("2")
		if len(d.Due) > 0 {
			label = "**" + label + "**"
		}
		week = append(week, label)
		if d.Date.Weekday() == time.Sunday {
			c.Weeks = append(c.Weeks, week)
			week = nil
		}
		for _, rt := range d.Due {
			c.Items = append(c.Items, CalendarItem{Date: d.Date, Description: describeRecurring(rt), Amount: signed(rt), Past: d.Past})
		}
	}
	if len(week) > 0 {
		c.Weeks = append(c.Weeks, append(week, make([]string, 7-len(week))...))
	}
	return c
}

// Due lists the recurring transactions waiting to be recorded.
type Due struct {
	Today    date.Date `json:"today"`
	Horizon  int       `json:"horizon"`
	Overdue  []DueLine `json:"overdue"`
	Upcoming []DueLine `json:"upcoming"`
}

// DueLine is one due recurring transaction, Days counts from today in
// absolute value.
type DueLine struct {
	Date        date.Date     `json:"date"`
	Days        int           `json:"days"`
	Account     string        `json:"account"`
	Description string        `json:"description"`
	Amount      finance.Money `json:"amount"`
}

func NewDue(r finance.DueReport, horizon int, accounts []finance.Account) *Due {
	names := namesOf(accounts)
	lines := func(items []finance.DueItem) []DueLine {
		var l []DueLine
		for _, it := range items {
			days := it.Days
			if days < 0 {
				days = -days
			}
			l = append(l, DueLine{
				Date:        it.Date,
				Days:        days,
				Account:     names.of(it.Recurring.Account),
				Description: describeRecurring(it.Recurring),
				Amount:      signed(it.Recurring),
			})
		}
		return l
	}
	return &Due{Today: r.Today, Horizon: horizon, Overdue: lines(r.Overdue), Upcoming: lines(r.Upcoming)}
}
