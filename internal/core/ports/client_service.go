package ports

import (
	"context"
	"time"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

// CreateClientInput carries all data needed to create a client.
type CreateClientInput struct {
	Name     string
	Deadline string
	Contact  string
	Email    string
	Phone    string
	GST      string
	Address  string
	Payment  string
	Invoice  *Upload // optional
	LR       *Upload // optional
}

// UpdateClientInput carries a partial update; nil fields are left untouched.
type UpdateClientInput struct {
	ID       string
	Name     *string
	Deadline *string
	Contact  *string
	Email    *string
	Phone    *string
	GST      *string
	Address  *string
	Payment  *string
	Invoice  *Upload
	LR       *Upload
}

// ListClientsInput carries the raw list query parameters.
type ListClientsInput struct {
	Payment string
	GST     string
	Sort    string // "duedate" sorts by deadline ascending
}

// ChartResult is the paid / not paid breakdown.
type ChartResult struct {
	Paid    int64 `json:"paid"`
	NotPaid int64 `json:"notPaid"`
	Total   int64 `json:"total"`
}

// Export is a generated spreadsheet ready to be streamed.
type Export struct {
	Filename string
	Data     []byte
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context, input ListClientsInput) ([]*domain.Client, error)
	ListUnpaid(ctx context.Context) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, input UpdateClientInput) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	Chart(ctx context.Context) (*ChartResult, error)
	ExportClients(ctx context.Context, input ListClientsInput) (*Export, error)
	DocumentURL(ctx context.Context, id string, kind domain.DocumentKind, ttl time.Duration) (string, error)
}
