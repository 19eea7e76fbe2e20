package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const documentPrefix = "clients/"

type ClientService struct {
	repo   ports.ClientRepository
	docs   ports.DocumentStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewClientService(repo ports.ClientRepository, docs ports.DocumentStore, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, docs: docs, logger: logger, now: time.Now}
}

// CreateClient stores the attachments first and then the client document.
// When the insert fails the freshly uploaded objects are removed again.
func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	payment := domain.PaymentNotPaid
	if input.Payment != "" {
		payment = domain.PaymentStatus(input.Payment)
	}
	if !payment.Valid() {
		return nil, fmt.Errorf("create client: %w: unknown payment status %q", domain.ErrInvalidInput, input.Payment)
	}
	gst := domain.NormalizeGST(input.GST)
	if gst != domain.GSTYes && gst != domain.GSTNo {
		return nil, fmt.Errorf("create client: %w: gst must be yes or no", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	client := &domain.Client{
		Name:      strings.TrimSpace(input.Name),
		Deadline:  strings.TrimSpace(input.Deadline),
		Contact:   input.Contact,
		Email:     strings.TrimSpace(input.Email),
		Phone:     input.Phone,
		GST:       gst,
		Address:   input.Address,
		Payment:   payment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var uploaded []string
	var err error
	if client.Invoice, err = s.store(ctx, input.Invoice); err != nil {
		return nil, fmt.Errorf("create client: invoice: %w", err)
	}
	uploaded = appendKey(uploaded, client.Invoice)
	if client.LR, err = s.store(ctx, input.LR); err != nil {
		s.discard(ctx, uploaded...)
		return nil, fmt.Errorf("create client: lr: %w", err)
	}
	uploaded = appendKey(uploaded, client.LR)

	if err := s.repo.Create(ctx, client); err != nil {
		s.discard(ctx, uploaded...)
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// ListClients applies the optional payment / gst filters and deadline sort.
func (s *ClientService) ListClients(ctx context.Context, input ports.ListClientsInput) ([]*domain.Client, error) {
	filter := ports.ListClientsFilter{
		Payment:        input.Payment,
		SortByDeadline: input.Sort == "duedate",
	}
	if input.GST != "" {
		filter.GST = strings.ToLower(input.GST)
	}
	return s.repo.List(ctx, filter)
}

func (s *ClientService) ListUnpaid(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.FindUnpaid(ctx)
}

// UpdateClient applies a partial update. New attachments replace the old
// objects, which are deleted once the update is stored.
func (s *ClientService) UpdateClient(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error) {
	for field, v := range map[string]*string{
		"name":     input.Name,
		"deadline": input.Deadline,
		"contact":  input.Contact,
		"email":    input.Email,
		"phone":    input.Phone,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("update client: %w: %s cannot be blank", domain.ErrInvalidInput, field)
		}
	}
	if input.Deadline != nil {
		if _, err := domain.ParseDeadline(*input.Deadline, time.UTC); err != nil {
			return nil, fmt.Errorf("update client: %w: %v", domain.ErrInvalidInput, err)
		}
	}

	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	update := ports.ClientUpdate{
		Name:     input.Name,
		Deadline: input.Deadline,
		Contact:  input.Contact,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
	}
	if input.Payment != nil {
		p := domain.PaymentStatus(*input.Payment)
		if !p.Valid() {
			return nil, fmt.Errorf("update client: %w: unknown payment status %q", domain.ErrInvalidInput, *input.Payment)
		}
		update.Payment = &p
	}
	if input.GST != nil {
		gst := domain.NormalizeGST(*input.GST)
		if gst != domain.GSTYes && gst != domain.GSTNo {
			return nil, fmt.Errorf("update client: %w: gst must be yes or no", domain.ErrInvalidInput)
		}
		update.GST = &gst
	}

	var uploaded, replaced []string
	if input.Invoice != nil {
		key, err := s.store(ctx, input.Invoice)
		if err != nil {
			return nil, fmt.Errorf("update client: invoice: %w", err)
		}
		update.Invoice = &key
		uploaded = append(uploaded, key)
		replaced = appendKey(replaced, existing.Invoice)
	}
	if input.LR != nil {
		key, err := s.store(ctx, input.LR)
		if err != nil {
			s.discard(ctx, uploaded...)
			return nil, fmt.Errorf("update client: lr: %w", err)
		}
		update.LR = &key
		uploaded = append(uploaded, key)
		replaced = appendKey(replaced, existing.LR)
	}

	updated, err := s.repo.Update(ctx, input.ID, update)
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, fmt.Errorf("update client: %w", err)
	}
	s.discard(ctx, replaced...)

	s.logger.Info().Str("client_id", updated.ID).Msg("client updated")
	return updated, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.discard(ctx, deleted.Invoice, deleted.LR)
	s.logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

func (s *ClientService) Chart(ctx context.Context) (*ports.ChartResult, error) {
	counts, err := s.repo.CountByPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return &ports.ChartResult{
		Paid:    counts.Paid,
		NotPaid: counts.NotPaid,
		Total:   counts.Paid + counts.NotPaid,
	}, nil
}

// DocumentURL returns a temporary download link for a client attachment.
func (s *ClientService) DocumentURL(ctx context.Context, id string, kind domain.DocumentKind, ttl time.Duration) (string, error) {
	if !kind.Valid() {
		return "", domain.ErrDocumentNotFound
	}
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	key := client.Document(kind)
	if key == "" {
		return "", domain.ErrDocumentNotFound
	}
	return s.docs.URL(ctx, key, ttl)
}

func (s *ClientService) store(ctx context.Context, up *ports.Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	return s.docs.Put(ctx, documentPrefix, *up)
}

// discard removes objects best-effort; failures only leave orphans behind.
func (s *ClientService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.docs.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to delete document")
		}
	}
}

func appendKey(keys []string, key string) []string {
	if key == "" {
		return keys
	}
	return append(keys, key)
}
