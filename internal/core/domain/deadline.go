package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDeadline = errors.New("invalid deadline")

// deadlineLayouts are tried in order. Date-only layouts come first because the
// dashboard submits <input type="date"> values. Slash dates are month first;
// a day-first value such as 13/01/2024 does not parse.
var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDeadline converts a stored deadline string into the midnight of its
// calendar day in loc.
func ParseDeadline(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDeadline
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range deadlineLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return StartOfDay(t, loc), nil
		}
	}
	return time.Time{}, ErrInvalidDeadline
}

// StartOfDay truncates t to midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay compares two instants by year, month and day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsOverdue reports whether an unpaid deadline lies strictly before today.
// A deadline equal to today is still within its grace period.
func IsOverdue(deadline, today time.Time) bool {
	return deadline.Before(today)
}
