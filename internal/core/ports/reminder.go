package ports

import (
	"context"
	"time"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

// Notifier delivers a payment reminder to a client. A nil error means the
// message was accepted for delivery.
type Notifier interface {
	SendReminder(ctx context.Context, client *domain.Client) error
}

// NotificationLedger remembers the calendar day of the last successful
// scheduled reminder per client.
type NotificationLedger interface {
	// LastNotified returns the recorded day, or ok=false when nothing is recorded.
	LastNotified(ctx context.Context, clientID string) (day time.Time, ok bool, err error)
	Record(ctx context.Context, clientID string, day time.Time) error
}

// ReminderService is the overdue-payment reminder use case.
type ReminderService interface {
	// RunScan notifies every unpaid, overdue client at most once per calendar day.
	// The returned error is only set when the client query itself failed.
	RunScan(ctx context.Context) (domain.ScanReport, error)
	// NotifyOne sends a reminder to one unpaid client regardless of deadline
	// and of earlier reminders sent today.
	NotifyOne(ctx context.Context, clientID string) (*domain.Client, error)
}

// ClientDispatcher fans per-client work out and returns once all of it finished.
type ClientDispatcher interface {
	Run(ctx context.Context, clients []*domain.Client, work func(ctx context.Context, c *domain.Client))
}
