package handler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// stubClientService records the last inputs and returns canned results.
// Unset funcs panic, which fails the test that reached them.
type stubClientService struct {
	createFn func(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error)
	getFn    func(ctx context.Context, id string) (*domain.Client, error)
	listFn   func(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error)
	unpaidFn func(ctx context.Context) ([]*domain.Client, error)
	updateFn func(ctx context.Context, in ports.UpdateClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, id string) error
	chartFn  func(ctx context.Context) (*ports.ChartResult, error)
	exportFn func(ctx context.Context, in ports.ListClientsInput) (*ports.Export, error)
	docURLFn func(ctx context.Context, id string, kind domain.DocumentKind, ttl time.Duration) (string, error)
}

func (s *stubClientService) CreateClient(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) ListClients(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error) {
	return s.listFn(ctx, in)
}

func (s *stubClientService) ListUnpaid(ctx context.Context) ([]*domain.Client, error) {
	return s.unpaidFn(ctx)
}

func (s *stubClientService) UpdateClient(ctx context.Context, in ports.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, in)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubClientService) Chart(ctx context.Context) (*ports.ChartResult, error) {
	return s.chartFn(ctx)
}

func (s *stubClientService) ExportClients(ctx context.Context, in ports.ListClientsInput) (*ports.Export, error) {
	return s.exportFn(ctx, in)
}

func (s *stubClientService) DocumentURL(ctx context.Context, id string, kind domain.DocumentKind, ttl time.Duration) (string, error) {
	return s.docURLFn(ctx, id, kind, ttl)
}

type stubReminderService struct {
	scanFn   func(ctx context.Context) (domain.ScanReport, error)
	notifyFn func(ctx context.Context, id string) (*domain.Client, error)
}

func (s *stubReminderService) RunScan(ctx context.Context) (domain.ScanReport, error) {
	return s.scanFn(ctx)
}

func (s *stubReminderService) NotifyOne(ctx context.Context, id string) (*domain.Client, error) {
	return s.notifyFn(ctx, id)
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	return string(b)
}
