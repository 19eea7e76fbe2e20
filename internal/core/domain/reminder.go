package domain

import "time"

// ScanReport summarises one overdue-payment scan.
type ScanReport struct {
	Today           time.Time     `json:"today"`
	Candidates      int           `json:"candidates"`
	Overdue         int           `json:"overdue"`
	Sent            int           `json:"sent"`
	Failed          int           `json:"failed"`
	AlreadyNotified int           `json:"already_notified"`
	InvalidDeadline int           `json:"invalid_deadline"`
	Duration        time.Duration `json:"-"`
}

// ReminderOutcome is the result of processing one client during a scan.
type ReminderOutcome string

const (
	OutcomeNotDue          ReminderOutcome = "not_due"
	OutcomeSent            ReminderOutcome = "sent"
	OutcomeFailed          ReminderOutcome = "failed"
	OutcomeAlreadyNotified ReminderOutcome = "already_notified"
	OutcomeInvalidDeadline ReminderOutcome = "invalid_deadline"
)

// Add folds a single client outcome into the report.
func (r *ScanReport) Add(o ReminderOutcome) {
	switch o {
	case OutcomeSent:
		r.Overdue++
		r.Sent++
	case OutcomeFailed:
		r.Overdue++
		r.Failed++
	case OutcomeAlreadyNotified:
		r.Overdue++
		r.AlreadyNotified++
	case OutcomeInvalidDeadline:
		r.InvalidDeadline++
	}
}
