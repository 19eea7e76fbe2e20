package handler

import "time"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// resultResponse is the {"success": ...} envelope the dashboard expects on
// client and reminder routes.
type resultResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Client  *clientResponse `json:"client,omitempty"`
}

// --- Request types ---

// createClientRequest is bound from a multipart form or a JSON body.
// Files are read separately from the "invoice" and "lr" form fields.
type createClientRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Deadline string `json:"deadline" form:"deadline" validate:"required,deadline"`
	Contact  string `json:"contact"  form:"contact"  validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Phone    string `json:"phone"    form:"phone"    validate:"required"`
	GST      string `json:"gst"      form:"gst"      validate:"omitempty,oneof=yes no Yes No YES NO"`
	Address  string `json:"address"  form:"address"`
	Payment  string `json:"payment"  form:"payment"  validate:"omitempty,oneof='Paid' 'Not Paid'"`
}

// updateClientRequest only carries the fields present in the request. A
// present field is validated even when empty, so required fields cannot be
// blanked.
type updateClientRequest struct {
	Name     *string `json:"name"     validate:"omitnil,min=1"`
	Deadline *string `json:"deadline" validate:"omitnil,deadline"`
	Contact  *string `json:"contact"  validate:"omitnil,min=1"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Phone    *string `json:"phone"    validate:"omitnil,min=1"`
	GST      *string `json:"gst"      validate:"omitnil,oneof=yes no Yes No YES NO"`
	Address  *string `json:"address"`
	Payment  *string `json:"payment"  validate:"omitnil,oneof='Paid' 'Not Paid'"`
}

type listClientsQuery struct {
	Payment string `query:"payment" validate:"omitempty,oneof='Paid' 'Not Paid'"`
	GST     string `query:"gst"`
	Sort    string `query:"sort"    validate:"omitempty,oneof=duedate"`
}

// --- Response types ---

type clientLinks struct {
	Self     string `json:"self"`
	Invoice  string `json:"invoice,omitempty"`
	LR       string `json:"lr,omitempty"`
	Reminder string `json:"reminder"`
}

type clientResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Deadline  string      `json:"deadline"`
	Contact   string      `json:"contact"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	GST       string      `json:"gst"`
	Address   string      `json:"address,omitempty"`
	Payment   string      `json:"payment"`
	Invoice   string      `json:"invoice,omitempty"`
	LR        string      `json:"lr,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Links     clientLinks `json:"_links"`
}

type unpaidClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Deadline string `json:"deadline"`
}

type unpaidClientsResponse struct {
	Count   int                    `json:"count"`
	Clients []unpaidClientResponse `json:"clients"`
}

type scanResponse struct {
	Today           string `json:"today"`
	Candidates      int    `json:"candidates"`
	Overdue         int    `json:"overdue"`
	Sent            int    `json:"sent"`
	Failed          int    `json:"failed"`
	AlreadyNotified int    `json:"already_notified"`
	InvalidDeadline int    `json:"invalid_deadline"`
	DurationMS      int64  `json:"duration_ms"`
}
