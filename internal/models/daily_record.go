package models

import (
	"sort"
	"time"
)

// DateLayout is the calendar date key format of the daily log.
const DateLayout = "2006-01-02"

// DailyRecord is the event count and derived cost of one calendar day.
type DailyRecord struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

// DateKey formats t as a local calendar date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date key as midnight UTC so that differences between
// two keys are always whole days regardless of DST transitions.
func ParseDate(key string) (time.Time, error) {
	return time.Parse(DateLayout, key)
}

type History []DailyRecord

// Find returns the index of the record for date, or -1.
func (h History) Find(date string) int {
	for i := range h {
		if h[i].Date == date {
			return i
		}
	}
	return -1
}

func (h History) Clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// SortedDesc returns a copy ordered from the most recent date to the oldest.
// Keys that fail to parse sort after every valid date.
func (h History) SortedDesc() History {
	out := h.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := ParseDate(out[i].Date)
		b, errB := ParseDate(out[j].Date)
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.After(b)
	})
	return out
}

func (h History) TotalCount() int {
	total := 0
	for _, r := range h {
		total += r.Count
	}
	return total
}

func (h History) TotalCost() float64 {
	total := 0.0
	for _, r := range h {
		total += r.Cost
	}
	return total
}
