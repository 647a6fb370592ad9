package date

import (
	"iter"
	"slices"
)

// History is a series of values indexed by day, sorted chronologically with
// at most one value per day.
type History[T any] struct {
	days   []Date
	values []T
}

// Append records q on day on. A value already recorded that day is replaced.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Latest returns the last day and its value, zero values when h is empty.
func (h *History[T]) Latest() (on Date, value T) {
	if n := len(h.days); n > 0 {
		return h.days[n-1], h.values[n-1]
	}
	return on, value
}

// Values iterates over the days and their value in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// ValueAsOf returns the value recorded on day, or else the last one before
// it. ok is false when nothing was recorded up to day.
func (h *History[T]) ValueAsOf(day Date) (value T, ok bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	switch {
	case found:
		return h.values[i], true
	case i == 0:
		return value, false
	}
	return h.values[i-1], true
}

// Iterate returns the days of all the histories, merged without duplicates.
func Iterate[T any](histories ...*History[T]) iter.Seq[Date] {
	days := make([][]Date, 0, len(histories))
	for _, h := range histories {
		days = append(days, h.days)
	}
	return iterate(days...)
}
