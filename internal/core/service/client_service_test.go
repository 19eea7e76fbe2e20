package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

func minimalClientInput() ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:     "Sharma Textiles",
		Deadline: "2024-03-01",
		Contact:  "R. Sharma",
		Email:    "accounts@sharma.example.com",
		Phone:    "+91 98765 43210",
	}
}

func upload(name, body string) *ports.Upload {
	return &ports.Upload{Filename: name, ContentType: "application/pdf", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// CreateClient
// ---------------------------------------------------------------------------

func TestClientService_Create_Defaults(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, newStubDocStore(), discardLogger)

	c, err := svc.CreateClient(context.Background(), minimalClientInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if c.Payment != domain.PaymentNotPaid {
		t.Errorf("expected default payment %q, got %q", domain.PaymentNotPaid, c.Payment)
	}
	if c.GST != domain.GSTNo {
		t.Errorf("expected default gst %q, got %q", domain.GSTNo, c.GST)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestClientService_Create_NormalizesGST(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), newStubDocStore(), discardLogger)
	in := minimalClientInput()
	in.GST = "Yes"

	c, err := svc.CreateClient(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.GST != domain.GSTYes {
		t.Errorf("expected gst to be lower-cased, got %q", c.GST)
	}
}

func TestClientService_Create_RejectsUnknownPayment(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), newStubDocStore(), discardLogger)
	in := minimalClientInput()
	in.Payment = "Maybe"

	if _, err := svc.CreateClient(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClientService_Create_StoresDocuments(t *testing.T) {
	docs := newStubDocStore()
	svc := NewClientService(newStubClientRepo(), docs, discardLogger)
	in := minimalClientInput()
	in.Invoice = upload("invoice.pdf", "INV")
	in.LR = upload("lr.pdf", "LR")

	c, err := svc.CreateClient(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(c.Invoice, documentPrefix) || !strings.HasSuffix(c.Invoice, "invoice.pdf") {
		t.Errorf("unexpected invoice key: %q", c.Invoice)
	}
	if string(docs.objects[c.LR]) != "LR" {
		t.Errorf("lr object not stored under %q", c.LR)
	}
}

func TestClientService_Create_RepoFailureDiscardsDocuments(t *testing.T) {
	repo := newStubClientRepo()
	repo.createErr = errors.New("mongo down")
	docs := newStubDocStore()
	svc := NewClientService(repo, docs, discardLogger)
	in := minimalClientInput()
	in.Invoice = upload("invoice.pdf", "INV")

	if _, err := svc.CreateClient(context.Background(), in); err == nil {
		t.Fatal("expected error")
	}
	if len(docs.objects) != 0 {
		t.Errorf("expected uploaded objects to be removed, %d left", len(docs.objects))
	}
}

// ---------------------------------------------------------------------------
// List / Chart
// ---------------------------------------------------------------------------

func seededClients() *stubClientRepo {
	return newStubClientRepo(
		&domain.Client{ID: "1", Name: "A", Deadline: "2024-03-10", GST: "yes", Payment: domain.PaymentPaid},
		&domain.Client{ID: "2", Name: "B", Deadline: "2024-01-05", GST: "no", Payment: domain.PaymentNotPaid},
		&domain.Client{ID: "3", Name: "C", Deadline: "2024-02-01", GST: "yes", Payment: domain.PaymentNotPaid},
	)
}

func TestClientService_List_Filters(t *testing.T) {
	svc := NewClientService(seededClients(), newStubDocStore(), discardLogger)

	got, err := svc.ListClients(context.Background(), ports.ListClientsInput{Payment: "Not Paid", GST: "Yes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only client 3, got %+v", got)
	}
}

func TestClientService_List_SortByDueDate(t *testing.T) {
	svc := NewClientService(seededClients(), newStubDocStore(), discardLogger)

	got, _ := svc.ListClients(context.Background(), ports.ListClientsInput{Sort: "duedate"})
	if len(got) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "3" || got[2].ID != "1" {
		t.Errorf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestClientService_Chart(t *testing.T) {
	svc := NewClientService(seededClients(), newStubDocStore(), discardLogger)

	chart, err := svc.Chart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chart.Paid != 1 || chart.NotPaid != 2 || chart.Total != 3 {
		t.Errorf("unexpected chart: %+v", chart)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestClientService_Update_Partial(t *testing.T) {
	repo := seededClients()
	svc := NewClientService(repo, newStubDocStore(), discardLogger)

	updated, err := svc.UpdateClient(context.Background(), ports.UpdateClientInput{
		ID:      "2",
		Payment: strPtr("Paid"),
		GST:     strPtr("YES"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Payment != domain.PaymentPaid || updated.GST != "yes" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Name != "B" || updated.Deadline != "2024-01-05" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestClientService_Update_ReplacesDocument(t *testing.T) {
	repo := newStubClientRepo(&domain.Client{ID: "1", Name: "A", Invoice: "clients/old-invoice.pdf", Payment: domain.PaymentNotPaid})
	docs := newStubDocStore()
	docs.objects["clients/old-invoice.pdf"] = []byte("OLD")
	svc := NewClientService(repo, docs, discardLogger)

	updated, err := svc.UpdateClient(context.Background(), ports.UpdateClientInput{ID: "1", Invoice: upload("new.pdf", "NEW")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Invoice == "clients/old-invoice.pdf" {
		t.Fatal("expected invoice key to change")
	}
	if _, ok := docs.objects["clients/old-invoice.pdf"]; ok {
		t.Error("expected the replaced object to be deleted")
	}
}

func TestClientService_Update_RejectsBlankDeadline(t *testing.T) {
	repo := seededClients()
	svc := NewClientService(repo, newStubDocStore(), discardLogger)

	for _, in := range []ports.UpdateClientInput{
		{ID: "2", Deadline: strPtr("")},
		{ID: "2", Deadline: strPtr("next week")},
		{ID: "2", Name: strPtr("  ")},
	} {
		if _, err := svc.UpdateClient(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}

	c, _ := repo.FindByID(context.Background(), "2")
	if c.Deadline != "2024-01-05" || c.Name != "B" {
		t.Errorf("stored client changed: %+v", c)
	}
}

func TestClientService_Update_NotFound(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), newStubDocStore(), discardLogger)

	_, err := svc.UpdateClient(context.Background(), ports.UpdateClientInput{ID: "nope", Name: strPtr("x")})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_Delete_RemovesDocuments(t *testing.T) {
	repo := newStubClientRepo(&domain.Client{ID: "1", Invoice: "clients/i.pdf", LR: "clients/l.pdf"})
	docs := newStubDocStore()
	svc := NewClientService(repo, docs, discardLogger)

	if err := svc.DeleteClient(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs.deleted) != 2 {
		t.Errorf("expected both documents deleted, got %v", docs.deleted)
	}
	if err := svc.DeleteClient(context.Background(), "1"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound on second delete, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Documents / Export
// ---------------------------------------------------------------------------

func TestClientService_DocumentURL(t *testing.T) {
	repo := newStubClientRepo(&domain.Client{ID: "1", Invoice: "clients/i.pdf"})
	svc := NewClientService(repo, newStubDocStore(), discardLogger)

	url, err := svc.DocumentURL(context.Background(), "1", domain.DocumentInvoice, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "clients/i.pdf") {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := svc.DocumentURL(context.Background(), "1", domain.DocumentLR, time.Minute); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound for missing lr, got %v", err)
	}
	if _, err := svc.DocumentURL(context.Background(), "1", "passport", time.Minute); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound for unknown kind, got %v", err)
	}
}

func TestClientService_Export(t *testing.T) {
	svc := NewClientService(seededClients(), newStubDocStore(), discardLogger)

	export, err := svc.ExportClients(context.Background(), ports.ListClientsInput{Payment: "Not Paid", Sort: "duedate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(export.Filename, ".xlsx") {
		t.Errorf("unexpected filename: %s", export.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	if err != nil {
		t.Fatalf("export is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[1][0] != "B" || rows[2][0] != "C" {
		t.Errorf("unexpected rows: %v", rows)
	}
}
