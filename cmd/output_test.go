package cmd

import (
	"bytes"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
)

func TestWriteJSON(t *testing.T) {
	view := &renderer.History{
		Title: "Checking",
		From:  date.New(2024, 1, 1),
		To:    date.New(2024, 1, 31),
		Points: []renderer.HistoryLine{
			{Date: date.New(2024, 1, 5), Balance: finance.M(700, "USD"), Change: finance.M(-800, "USD")},
		},
	}
	testCases := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{name: "amount", query: "$.points[0].balance.amount", want: "700\n"},
		{name: "date", query: "$.points[0].date", want: "\"2024-01-05\"\n"},
		{name: "dates", query: "$.points[*].change.currency", want: "[\n  \"USD\"\n]\n"},
		{name: "title", query: "$.title", want: "\"Checking\"\n"},
		{name: "invalid", query: "$.points[", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeJSON(&buf, view, tc.query)
			if (err != nil) != tc.wantErr {
				t.Fatalf("writeJSON() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && buf.String() != tc.want {
				t.Errorf("writeJSON() = %q, want %q", buf.String(), tc.want)
			}
		})
	}
}
