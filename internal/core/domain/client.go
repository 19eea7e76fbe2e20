package domain

import (
	"errors"
	"strings"
	"time"
)

// PaymentStatus represents whether a client has settled their invoice.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentNotPaid PaymentStatus = "Not Paid"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentNotPaid
}

const (
	GSTYes = "yes"
	GSTNo  = "no"
)

// DocumentKind identifies one of the files attached to a client.
type DocumentKind string

const (
	DocumentInvoice DocumentKind = "invoice"
	DocumentLR      DocumentKind = "lr"
)

// Valid reports whether k names a supported attachment.
func (k DocumentKind) Valid() bool {
	return k == DocumentInvoice || k == DocumentLR
}

var ErrClientNotFound = errors.New("client not found")
var ErrClientAlreadyPaid = errors.New("client has already paid")
var ErrReminderNotSent = errors.New("reminder not sent")
var ErrDocumentNotFound = errors.New("document not found")
var ErrInvalidInput = errors.New("invalid input")

// Client is the tracked customer and the only aggregate of the service.
type Client struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Deadline  string        `json:"deadline" bson:"deadline"`
	Contact   string        `json:"contact" bson:"contact"`
	Email     string        `json:"email" bson:"email"`
	Phone     string        `json:"phone" bson:"phone"`
	GST       string        `json:"gst" bson:"gst"`
	Address   string        `json:"address,omitempty" bson:"address,omitempty"`
	Payment   PaymentStatus `json:"payment" bson:"payment"`
	Invoice   string        `json:"invoice,omitempty" bson:"invoice,omitempty"`
	LR        string        `json:"lr,omitempty" bson:"lr,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// IsPaid reports whether the client is marked as paid.
func (c *Client) IsPaid() bool {
	return c.Payment == PaymentPaid
}

// Document returns the stored object key for the given attachment kind.
func (c *Client) Document(kind DocumentKind) string {
	switch kind {
	case DocumentInvoice:
		return c.Invoice
	case DocumentLR:
		return c.LR
	}
	return ""
}

// NormalizeGST lower-cases the GST flag and falls back to "no".
func NormalizeGST(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return GSTNo
	}
	return v
}
