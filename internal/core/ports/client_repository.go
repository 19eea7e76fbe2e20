package ports

import (
	"context"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

// ListClientsFilter carries the optional query parameters of the list endpoint.
type ListClientsFilter struct {
	Payment        string // optional: "Paid" / "Not Paid"
	GST            string // optional: "yes" / "no"
	SortByDeadline bool   // earliest deadline first
}

// ClientUpdate carries the fields of a partial update. Nil means "leave as is".
type ClientUpdate struct {
	Name     *string
	Deadline *string
	Contact  *string
	Email    *string
	Phone    *string
	GST      *string
	Address  *string
	Payment  *domain.PaymentStatus
	Invoice  *string
	LR       *string
}

// PaymentCounts is the paid / not paid breakdown used by the dashboard chart.
type PaymentCounts struct {
	Paid    int64
	NotPaid int64
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	// FindByID returns domain.ErrClientNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, error)
	// Update applies the non-nil fields and returns the updated document.
	Update(ctx context.Context, id string, update ClientUpdate) (*domain.Client, error)
	// Delete removes the client and returns the deleted document.
	Delete(ctx context.Context, id string) (*domain.Client, error)
	// FindUnpaid returns every client whose payment status is "Not Paid".
	FindUnpaid(ctx context.Context) ([]*domain.Client, error)
	CountByPayment(ctx context.Context) (PaymentCounts, error)
}
