package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDeadline(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name string
		raw  string
		loc  *time.Location
		want string
	}{
		{name: "date input", raw: "2024-03-01", loc: time.UTC, want: "2024-03-01"},
		{name: "surrounding spaces", raw: "  2024-03-01 ", loc: time.UTC, want: "2024-03-01"},
		{name: "rfc3339 reduced to local day", raw: "2024-02-29T20:00:00Z", loc: ist, want: "2024-03-01"},
		{name: "datetime without zone", raw: "2024-03-01T18:30:00", loc: time.UTC, want: "2024-03-01"},
		{name: "slash date is month first", raw: "01/02/2024", loc: time.UTC, want: "2024-01-02"},
		{name: "slash date without padding", raw: "1/2/2024", loc: time.UTC, want: "2024-01-02"},
		{name: "long month name", raw: "March 1, 2024", loc: time.UTC, want: "2024-03-01"},
		{name: "short month name", raw: "Mar 1, 2024", loc: time.UTC, want: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadline(tt.raw, tt.loc)
			if err != nil {
				t.Fatalf("ParseDeadline(%q) returned error: %v", tt.raw, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDeadline(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Location() != tt.loc {
				t.Errorf("expected midnight in %s, got %s", tt.loc, got)
			}
		})
	}
}

func TestParseDeadline_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "13/01/2024", "2024-13-01", "31/12/2024"} {
		if _, err := ParseDeadline(raw, time.UTC); !errors.Is(err, ErrInvalidDeadline) {
			t.Errorf("ParseDeadline(%q): expected ErrInvalidDeadline, got %v", raw, err)
		}
	}
}

func TestIsOverdue_StrictlyBeforeToday(t *testing.T) {
	today := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	if IsOverdue(today, today) {
		t.Error("a deadline of today is not overdue")
	}
	if !IsOverdue(today.AddDate(0, 0, -1), today) {
		t.Error("yesterday's deadline is overdue")
	}
	if IsOverdue(today.AddDate(0, 0, 1), today) {
		t.Error("tomorrow's deadline is not overdue")
	}
}

func TestSameDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, 1, 4, 20, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)

	if SameDay(late, morning, time.UTC) {
		t.Error("different UTC days reported as the same")
	}
	if !SameDay(late, morning, ist) {
		t.Error("both instants fall on 2024-01-05 in IST")
	}
}
