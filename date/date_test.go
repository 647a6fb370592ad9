package date

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
	if got, want := New(2025, time.January, 0), New(2024, time.December, 31); got != want {
		t.Errorf("New(2025, 1, 0) = %v, want %v", got, want)
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		n    int
		want Date
	}{
		{"same day", New(2024, time.January, 15), 1, New(2024, time.February, 15)},
		{"clamped to leap day", New(2024, time.January, 31), 1, New(2024, time.February, 29)},
		{"clamped non leap", New(2025, time.January, 31), 1, New(2025, time.February, 28)},
		{"thirty days month", New(2024, time.January, 31), 3, New(2024, time.April, 30)},
		{"year boundary", New(2024, time.November, 30), 3, New(2025, time.February, 28)},
		{"backward", New(2024, time.March, 31), -1, New(2024, time.February, 29)},
		{"leap day plus a year", New(2024, time.February, 29), 12, New(2025, time.February, 28)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.AddMonths(tc.n); got != tc.want {
				t.Errorf("%v.AddMonths(%d) = %v, want %v", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	a, b := New(2024, time.February, 27), New(2024, time.March, 2)
	if got := a.DaysUntil(b); got != 4 {
		t.Errorf("DaysUntil() = %d, want 4", got)
	}
	if got := b.DaysUntil(a); got != -4 {
		t.Errorf("DaysUntil() = %d, want -4", got)
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, time.December, 31), New(2025, time.January, 1)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() is not a total order on %v and %v", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After disagree with Compare")
	}
}

func TestParse(t *testing.T) {
	today := Today()
	currentYear := today.Year()
	currentMonth := today.Month()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO Format (Fallback)
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2025-07-01T10:30:00Z", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		// Relative Duration Format
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-0d", today, false},
		{"+0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", today.AddMonths(1), false},
		{"-3q", today.AddMonths(-9), false},
		{"+1y", today.AddMonths(12), false},

		// [MM-]DD Format
		{"27", New(currentYear, currentMonth, 27), false},
		{fmt.Sprintf("%d-27", currentMonth), New(currentYear, currentMonth, 27), false},
		{"0", New(currentYear, currentMonth, 0), false}, // Last day of previous month
		{"1-15", New(currentYear, time.January, 15), false},
		{"0-15", New(currentYear-1, time.December, 15), false},
		{"1-0", New(currentYear-1, time.December, 31), false}, // Last day of previous year
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected Date
		wantErr  bool
	}{
		{"iso", `"2024-01-31"`, New(2024, time.January, 31), false},
		{"lenient", `"2024-1-3"`, New(2024, time.January, 3), false},
		{"timestamp", `"2024-01-31T23:00:00Z"`, New(2024, time.January, 31), false},
		{"empty is zero", `""`, Date{}, false},
		{"relative refused", `"-1d"`, Date{}, true},
		{"not a string", `20240131`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.json), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.json, got, tt.expected)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(New(2024, time.March, 5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-05"` {
		t.Errorf("Marshal() = %s, want %q", b, "2024-03-05")
	}
}

func TestIterate(t *testing.T) {
	var h1, h2 History[int]
	h1.Append(New(2024, 1, 3), 1).Append(New(2024, 1, 1), 1)
	h2.Append(New(2024, 1, 2), 2).Append(New(2024, 1, 3), 2)

	var got []Date
	for d := range Iterate(&h1, &h2) {
		got = append(got, d)
	}
	want := []Date{New(2024, 1, 1), New(2024, 1, 2), New(2024, 1, 3)}
	if len(got) != len(want) {
		t.Fatalf("Iterate() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Iterate()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStep(t *testing.T) {
	start := New(2024, time.January, 31)
	testCases := []struct {
		p    Period
		k    int
		want Date
	}{
		{Daily, 1, New(2024, time.February, 1)},
		{Weekly, 2, New(2024, time.February, 14)},
		{Monthly, 1, New(2024, time.February, 29)},
		{Monthly, 2, New(2024, time.March, 31)},
		{Monthly, 3, New(2024, time.April, 30)},
		{Quarterly, 1, New(2024, time.April, 30)},
		{Yearly, 1, New(2025, time.January, 31)},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v*%d", tc.p, tc.k), func(t *testing.T) {
			if got := start.Step(tc.p, tc.k); got != tc.want {
				t.Errorf("Step(%v, %d) = %v, want %v", tc.p, tc.k, got, tc.want)
			}
		})
	}
}
