// Package metrics holds the custom Prometheus collectors of the clients API.
// Collectors register with the default registry on package init through
// promauto; HTTP request metrics come from echo-contrib's echoprometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const namespace = "clients"

// Scan triggers.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersTotal counts reminder deliveries.
// Label:
//   - result: "sent" or "failed"
var RemindersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_total",
		Help:      "Total number of payment reminders attempted, by result.",
	},
	[]string{"result"},
)

// ReminderSendDuration measures a single notifier call.
var ReminderSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reminder_send_duration_seconds",
		Help:      "Duration of a single reminder delivery.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)

// ReminderScansTotal counts overdue-payment scans.
// Labels:
//   - trigger: "scheduled" or "manual"
//   - result: "ok", "error" (client query failed) or "panic"
var ReminderScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminder_scans_total",
		Help:      "Total number of overdue-payment scans, by trigger and result.",
	},
	[]string{"trigger", "result"},
)

// ReminderScanDuration measures a whole scan.
var ReminderScanDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reminder_scan_duration_seconds",
		Help:      "Duration of an overdue-payment scan.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	},
	[]string{"trigger"},
)

// LastScanClients reports the per-outcome counts of the latest scan.
// Label:
//   - outcome: candidates, overdue, sent, failed, already_notified, invalid_deadline
var LastScanClients = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_scan_clients",
		Help:      "Client counts of the most recent overdue-payment scan, by outcome.",
	},
	[]string{"outcome"},
)

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts clients created through the API.
var ClientsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created.",
	},
)

// ObserveScan records the result of one scan.
func ObserveScan(trigger string, report domain.ScanReport, err error) {
	if err != nil {
		ReminderScansTotal.WithLabelValues(trigger, "error").Inc()
		return
	}
	ReminderScansTotal.WithLabelValues(trigger, "ok").Inc()
	ReminderScanDuration.WithLabelValues(trigger).Observe(report.Duration.Seconds())

	LastScanClients.WithLabelValues("candidates").Set(float64(report.Candidates))
	LastScanClients.WithLabelValues("overdue").Set(float64(report.Overdue))
	LastScanClients.WithLabelValues("sent").Set(float64(report.Sent))
	LastScanClients.WithLabelValues("failed").Set(float64(report.Failed))
	LastScanClients.WithLabelValues("already_notified").Set(float64(report.AlreadyNotified))
	LastScanClients.WithLabelValues("invalid_deadline").Set(float64(report.InvalidDeadline))
}

type instrumentedNotifier struct {
	next ports.Notifier
}

// InstrumentNotifier wraps next so every delivery is counted and timed.
func InstrumentNotifier(next ports.Notifier) ports.Notifier {
	return &instrumentedNotifier{next: next}
}

func (n *instrumentedNotifier) SendReminder(ctx context.Context, c *domain.Client) error {
	start := time.Now()
	err := n.next.SendReminder(ctx, c)
	ReminderSendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		RemindersTotal.WithLabelValues("failed").Inc()
		return err
	}
	RemindersTotal.WithLabelValues("sent").Inc()
	return nil
}
