// Package memory holds process-local stores. Everything here is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"
)

// NotificationLedger is the default in-process record of the last reminder day
// per client. Each call locks only for a single map read or write.
type NotificationLedger struct {
	mu   sync.RWMutex
	days map[string]time.Time
}

func NewNotificationLedger() *NotificationLedger {
	return &NotificationLedger{days: make(map[string]time.Time)}
}

func (l *NotificationLedger) LastNotified(_ context.Context, clientID string) (time.Time, bool, error) {
	l.mu.RLock()
	day, ok := l.days[clientID]
	l.mu.RUnlock()
	return day, ok, nil
}

func (l *NotificationLedger) Record(_ context.Context, clientID string, day time.Time) error {
	l.mu.Lock()
	l.days[clientID] = day
	l.mu.Unlock()
	return nil
}

// Len reports how many clients have a recorded reminder.
func (l *NotificationLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.days)
}
