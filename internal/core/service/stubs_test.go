package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub client repository
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Client
	order     []string
	nextID    int
	findErr   error // returned by FindUnpaid / List
	createErr error
}

func newStubClientRepo(clients ...*domain.Client) *stubClientRepo {
	r := &stubClientRepo{byID: make(map[string]*domain.Client)}
	for _, c := range clients {
		clone := *c
		r.byID[c.ID] = &clone
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = fmt.Sprintf("client-%d", r.nextID)
	clone := *c
	r.byID[c.ID] = &clone
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

// List mirrors the filters of the Mongo repository.
func (r *stubClientRepo) List(_ context.Context, f ports.ListClientsFilter) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Client
	for _, id := range r.order {
		c, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.Payment != "" && string(c.Payment) != f.Payment {
			continue
		}
		if f.GST != "" && c.GST != f.GST {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	if f.SortByDeadline {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, u ports.ClientUpdate) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	setString(&c.Name, u.Name)
	setString(&c.Deadline, u.Deadline)
	setString(&c.Contact, u.Contact)
	setString(&c.Email, u.Email)
	setString(&c.Phone, u.Phone)
	setString(&c.GST, u.GST)
	setString(&c.Address, u.Address)
	setString(&c.Invoice, u.Invoice)
	setString(&c.LR, u.LR)
	if u.Payment != nil {
		c.Payment = *u.Payment
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	delete(r.byID, id)
	return c, nil
}

func (r *stubClientRepo) FindUnpaid(ctx context.Context) ([]*domain.Client, error) {
	return r.List(ctx, ports.ListClientsFilter{Payment: string(domain.PaymentNotPaid)})
}

func (r *stubClientRepo) CountByPayment(_ context.Context) (ports.PaymentCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return ports.PaymentCounts{}, r.findErr
	}
	var counts ports.PaymentCounts
	for _, c := range r.byID {
		switch c.Payment {
		case domain.PaymentPaid:
			counts.Paid++
		case domain.PaymentNotPaid:
			counts.NotPaid++
		}
	}
	return counts, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ---------------------------------------------------------------------------
// Notifier / ledger stubs
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu       sync.Mutex
	sent     []string // client ids, in call order
	failFor  map[string]bool
	panicFor map[string]bool
	block    bool // wait for ctx cancellation
}

func (n *stubNotifier) SendReminder(ctx context.Context, c *domain.Client) error {
	n.mu.Lock()
	n.sent = append(n.sent, c.ID)
	fail := n.failFor[c.ID]
	boom := n.panicFor[c.ID]
	n.mu.Unlock()

	if n.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if boom {
		panic("smtp exploded")
	}
	if fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (n *stubNotifier) calls(id string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, s := range n.sent {
		if s == id {
			count++
		}
	}
	return count
}

type stubLedger struct {
	mu       sync.Mutex
	days     map[string]time.Time
	readErr  error
	panicFor map[string]bool
}

func newStubLedger() *stubLedger {
	return &stubLedger{days: make(map[string]time.Time)}
}

func (l *stubLedger) LastNotified(_ context.Context, id string) (time.Time, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.panicFor[id] {
		panic("ledger corrupted")
	}
	if l.readErr != nil {
		return time.Time{}, false, l.readErr
	}
	d, ok := l.days[id]
	return d, ok, nil
}

func (l *stubLedger) Record(_ context.Context, id string, day time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.days[id] = day
	return nil
}

func (l *stubLedger) get(id string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.days[id]
	return d, ok
}

// ---------------------------------------------------------------------------
// Document store stub
// ---------------------------------------------------------------------------

type stubDocStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
	n       int
}

func newStubDocStore() *stubDocStore {
	return &stubDocStore{objects: make(map[string][]byte)}
}

func (s *stubDocStore) Put(_ context.Context, prefix string, up ports.Upload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	s.n++
	key := fmt.Sprintf("%s%d-%s", prefix, s.n, up.Filename)
	s.objects[key] = data
	return key, nil
}

func (s *stubDocStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubDocStore) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.example.com/" + key + "?sig=abc", nil
}
