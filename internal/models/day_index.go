package models

import (
	"github.com/RoaringBitmap/roaring/v2"
	"time"
)

// DayNumber is the number of whole days between the Unix epoch and the
// calendar date of t.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// dayBias shifts day numbers into the unsigned bitmap range. Four-digit years
// stay within a few million days of the epoch in both directions.
const dayBias = 1 << 31

// DayIndex is the set of tracked days and the subset with at least one
// event, keyed by day number. Records with unparseable dates are left out.
type DayIndex struct {
	tracked *roaring.Bitmap
	events  *roaring.Bitmap
}

func NewDayIndex(h History) DayIndex {
	idx := DayIndex{tracked: roaring.New(), events: roaring.New()}
	for _, r := range h {
		d, err := ParseDate(r.Date)
		if err != nil {
			continue
		}
		n := uint32(DayNumber(d) + dayBias)
		idx.tracked.Add(n)
		if r.Count > 0 {
			idx.events.Add(n)
		}
	}
	return idx
}

// LastEventDay is the most recent day with an event.
func (idx DayIndex) LastEventDay() (int64, bool) {
	if idx.events.IsEmpty() {
		return 0, false
	}
	return int64(idx.events.Maximum()) - dayBias, true
}

// FirstDay is the oldest tracked day.
func (idx DayIndex) FirstDay() (int64, bool) {
	if idx.tracked.IsEmpty() {
		return 0, false
	}
	return int64(idx.tracked.Minimum()) - dayBias, true
}

func (idx DayIndex) EventDays() int {
	return int(idx.events.GetCardinality())
}

func (idx DayIndex) TrackedDays() int {
	return int(idx.tracked.GetCardinality())
}
