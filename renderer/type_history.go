package renderer

import (
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// History is the evolution of a balance, one line per day it changed.
type History struct {
	Title  string        `json:"title"`
	From   date.Date     `json:"from"`
	To     date.Date     `json:"to"`
	Points []HistoryLine `json:"points"`
}

// HistoryLine is the closing balance of a day.
type HistoryLine struct {
	Date    date.Date     `json:"date"`
	Balance finance.Money `json:"balance"`
	Change  finance.Money `json:"change"`
}

func NewHistory(title string, rng date.Range, h *date.History[finance.Money]) *History {
	v := &History{Title: cell(title), From: rng.From, To: rng.To}
	var prev finance.Money
	first := true
	for day, balance := range h.Values() {
		if !rng.Contains(day) {
			continue
		}
		if first {
			prev, first = balance, false
		}
		v.Points = append(v.Points, HistoryLine{Date: day, Balance: balance, Change: balance.Sub(prev)})
		prev = balance
	}
	return v
}
