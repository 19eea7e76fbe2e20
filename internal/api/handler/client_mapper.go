package handler

import (
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const clientsBasePath = "/api/clients/"

// --- Request → Service input ---

func toCreateClientInput(req createClientRequest, invoice, lr *ports.Upload) ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:     req.Name,
		Deadline: req.Deadline,
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		GST:      req.GST,
		Address:  req.Address,
		Payment:  req.Payment,
		Invoice:  invoice,
		LR:       lr,
	}
}

func toUpdateClientInput(id string, req updateClientRequest, invoice, lr *ports.Upload) ports.UpdateClientInput {
	return ports.UpdateClientInput{
		ID:       id,
		Name:     req.Name,
		Deadline: req.Deadline,
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		GST:      req.GST,
		Address:  req.Address,
		Payment:  req.Payment,
		Invoice:  invoice,
		LR:       lr,
	}
}

func toListClientsInput(q listClientsQuery) ports.ListClientsInput {
	return ports.ListClientsInput{Payment: q.Payment, GST: q.GST, Sort: q.Sort}
}

// --- Service result → HTTP response ---

func toClientResponse(c *domain.Client) *clientResponse {
	self := clientsBasePath + c.ID
	links := clientLinks{Self: self, Reminder: self + "/send-reminder"}
	if c.Invoice != "" {
		links.Invoice = self + "/documents/" + string(domain.DocumentInvoice)
	}
	if c.LR != "" {
		links.LR = self + "/documents/" + string(domain.DocumentLR)
	}

	return &clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Deadline:  c.Deadline,
		Contact:   c.Contact,
		Email:     c.Email,
		Phone:     c.Phone,
		GST:       c.GST,
		Address:   c.Address,
		Payment:   string(c.Payment),
		Invoice:   c.Invoice,
		LR:        c.LR,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
		Links:     links,
	}
}

func toClientListResponse(clients []*domain.Client) []*clientResponse {
	out := make([]*clientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	return out
}

func toUnpaidResponse(clients []*domain.Client) unpaidClientsResponse {
	items := make([]unpaidClientResponse, len(clients))
	for i, c := range clients {
		items[i] = unpaidClientResponse{ID: c.ID, Name: c.Name, Email: c.Email, Deadline: c.Deadline}
	}
	return unpaidClientsResponse{Count: len(items), Clients: items}
}

func toScanResponse(r domain.ScanReport) scanResponse {
	return scanResponse{
		Today:           r.Today.Format("2006-01-02"),
		Candidates:      r.Candidates,
		Overdue:         r.Overdue,
		Sent:            r.Sent,
		Failed:          r.Failed,
		AlreadyNotified: r.AlreadyNotified,
		InvalidDeadline: r.InvalidDeadline,
		DurationMS:      r.Duration.Milliseconds(),
	}
}
