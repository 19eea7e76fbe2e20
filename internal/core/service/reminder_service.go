package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const defaultSendTimeout = 30 * time.Second

// ReminderOptions tunes the reminder service. Zero values fall back to defaults.
type ReminderOptions struct {
	// SendTimeout bounds a single Notifier call.
	SendTimeout time.Duration
	// Location defines calendar days. Defaults to time.Local.
	Location *time.Location
	// Now overrides the wall clock, used by tests.
	Now func() time.Time
}

type reminderService struct {
	clients    ports.ClientRepository
	notifier   ports.Notifier
	ledger     ports.NotificationLedger
	dispatcher ports.ClientDispatcher
	log        zerolog.Logger

	// scanSlot admits one RunScan at a time.
	scanSlot chan struct{}

	sendTimeout time.Duration
	loc         *time.Location
	now         func() time.Time
}

// NewReminderService returns a ReminderService implementation. A nil
// dispatcher processes clients sequentially.
func NewReminderService(
	clients ports.ClientRepository,
	notifier ports.Notifier,
	ledger ports.NotificationLedger,
	dispatcher ports.ClientDispatcher,
	log zerolog.Logger,
	opts ReminderOptions,
) ports.ReminderService {
	if dispatcher == nil {
		dispatcher = sequentialDispatcher{}
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &reminderService{
		clients:     clients,
		notifier:    notifier,
		ledger:      ledger,
		dispatcher:  dispatcher,
		log:         log,
		scanSlot:    make(chan struct{}, 1),
		sendTimeout: opts.SendTimeout,
		loc:         opts.Location,
		now:         opts.Now,
	}
}

// RunScan finds unpaid clients past their deadline and reminds each one at
// most once per calendar day. Overlapping calls wait for the running scan.
func (s *reminderService) RunScan(ctx context.Context) (domain.ScanReport, error) {
	select {
	case s.scanSlot <- struct{}{}:
	case <-ctx.Done():
		return domain.ScanReport{}, fmt.Errorf("run scan: waiting for running scan: %w", ctx.Err())
	}
	defer func() { <-s.scanSlot }()

	started := s.now()
	today := domain.StartOfDay(started, s.loc)
	report := domain.ScanReport{Today: today}

	unpaid, err := s.clients.FindUnpaid(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder scan aborted: failed to load unpaid clients")
		return report, fmt.Errorf("run scan: %w", err)
	}
	report.Candidates = len(unpaid)
	s.log.Info().Int("unpaid", len(unpaid)).Time("today", today).Msg("reminder scan started")

	var mu sync.Mutex
	s.dispatcher.Run(ctx, unpaid, func(ctx context.Context, c *domain.Client) {
		outcome := s.guardedRemind(ctx, c, today)
		mu.Lock()
		report.Add(outcome)
		mu.Unlock()
	})

	report.Duration = s.now().Sub(started)
	s.log.Info().
		Int("candidates", report.Candidates).
		Int("overdue", report.Overdue).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("already_notified", report.AlreadyNotified).
		Int("invalid_deadline", report.InvalidDeadline).
		Dur("duration", report.Duration).
		Msg("reminder scan finished")

	return report, nil
}

// guardedRemind counts a panic anywhere in one client's processing as a
// failed reminder.
func (s *reminderService) guardedRemind(ctx context.Context, c *domain.Client, today time.Time) (outcome domain.ReminderOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("client_id", c.ID).Interface("panic", r).Msg("panic while processing client reminder")
			outcome = domain.OutcomeFailed
		}
	}()
	return s.remindIfDue(ctx, c, today)
}

// remindIfDue applies the daily policy to one client. The ledger is only read
// before and written after the Notifier call, never held across it.
func (s *reminderService) remindIfDue(ctx context.Context, c *domain.Client, today time.Time) domain.ReminderOutcome {
	deadline, err := domain.ParseDeadline(c.Deadline, s.loc)
	if err != nil {
		s.log.Debug().Str("client_id", c.ID).Str("deadline", c.Deadline).Msg("skipping client with invalid deadline")
		return domain.OutcomeInvalidDeadline
	}
	if !domain.IsOverdue(deadline, today) {
		return domain.OutcomeNotDue
	}

	last, ok, err := s.ledger.LastNotified(ctx, c.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("client_id", c.ID).Msg("ledger lookup failed, notifying anyway")
	} else if ok && domain.SameDay(last, today, s.loc) {
		return domain.OutcomeAlreadyNotified
	}

	if err := s.send(ctx, c); err != nil {
		s.log.Error().Err(err).Str("client_id", c.ID).Str("email", c.Email).Msg("payment reminder failed")
		return domain.OutcomeFailed
	}

	if err := s.ledger.Record(ctx, c.ID, today); err != nil {
		s.log.Warn().Err(err).Str("client_id", c.ID).Msg("failed to record reminder date")
	}
	s.log.Info().Str("client_id", c.ID).Str("name", c.Name).Str("email", c.Email).Msg("payment reminder sent")
	return domain.OutcomeSent
}

// NotifyOne is the operator override: no deadline check and no ledger access.
func (s *reminderService) NotifyOne(ctx context.Context, clientID string) (*domain.Client, error) {
	c, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("notify client: %w", err)
	}
	if c.IsPaid() {
		return c, fmt.Errorf("notify client %s: %w", clientID, domain.ErrClientAlreadyPaid)
	}

	if err := s.send(ctx, c); err != nil {
		s.log.Error().Err(err).Str("client_id", c.ID).Msg("manual payment reminder failed")
		return c, fmt.Errorf("notify client %s: %w: %v", clientID, domain.ErrReminderNotSent, err)
	}

	s.log.Info().Str("client_id", c.ID).Str("email", c.Email).Msg("manual payment reminder sent")
	return c, nil
}

// send calls the Notifier under the per-client timeout and turns a panic
// into an error so one client cannot take the scan down.
func (s *reminderService) send(ctx context.Context, c *domain.Client) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()

	if err := s.notifier.SendReminder(ctx, c); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("send reminder: timed out after %s: %w", s.sendTimeout, err)
		}
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}

type sequentialDispatcher struct{}

func (sequentialDispatcher) Run(ctx context.Context, clients []*domain.Client, work func(context.Context, *domain.Client)) {
	for _, c := range clients {
		work(ctx, c)
	}
}
