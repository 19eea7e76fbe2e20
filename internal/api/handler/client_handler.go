package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/metrics"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service     ports.ClientService
	documentTTL time.Duration
}

func NewClientHandler(service ports.ClientService, documentTTL time.Duration) *ClientHandler {
	if documentTTL <= 0 {
		documentTTL = 15 * time.Minute
	}
	return &ClientHandler{service: service, documentTTL: documentTTL}
}

// Create handles POST /api/clients/add.
//
// @Summary      Create a client
// @Tags         clients
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Client name"
// @Param        deadline  formData  string  true   "Payment deadline (YYYY-MM-DD)"
// @Param        contact   formData  string  true   "Contact person"
// @Param        email     formData  string  true   "Email address"
// @Param        phone     formData  string  true   "Phone number"
// @Param        gst       formData  string  false  "GST registered (yes/no)"
// @Param        address   formData  string  false  "Address"
// @Param        payment   formData  string  false  "Paid / Not Paid"
// @Param        invoice   formData  file    false  "Invoice document"
// @Param        lr        formData  file    false  "Lorry receipt document"
// @Success      201  {object}  resultResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/clients/add [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	invoice, lr, closeFiles, err := readDocuments(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	defer closeFiles()

	client, err := h.service.CreateClient(c.Request().Context(), toCreateClientInput(req, invoice, lr))
	if err != nil {
		return h.fail(c, err)
	}

	metrics.ClientsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, resultResponse{Success: true, Client: toClientResponse(client)})
}

// List handles GET /api/clients/all.
//
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        payment  query     string  false  "Filter by payment status (Paid / Not Paid)"
// @Param        gst      query     string  false  "Filter by GST flag (yes / no)"
// @Param        sort     query     string  false  "duedate sorts by deadline ascending"
// @Success      200  {array}   clientResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/clients/all [get]
func (h *ClientHandler) List(c echo.Context) error {
	var q listClientsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
	}
	if err := c.Validate(q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	clients, err := h.service.ListClients(c.Request().Context(), toListClientsInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientListResponse(clients))
}

// Chart handles GET /api/clients/chart.
//
// @Summary      Paid / not paid breakdown
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  ports.ChartResult
// @Router       /api/clients/chart [get]
func (h *ClientHandler) Chart(c echo.Context) error {
	chart, err := h.service.Chart(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chart)
}

// Unpaid handles GET /api/clients/unpaid.
//
// @Summary      List unpaid clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  unpaidClientsResponse
// @Router       /api/clients/unpaid [get]
func (h *ClientHandler) Unpaid(c echo.Context) error {
	clients, err := h.service.ListUnpaid(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUnpaidResponse(clients))
}

// Export handles GET /api/clients/export.
//
// @Summary      Export clients as XLSX
// @Tags         clients
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        payment  query  string  false  "Filter by payment status"
// @Param        gst      query  string  false  "Filter by GST flag"
// @Param        sort     query  string  false  "duedate sorts by deadline ascending"
// @Success      200  {file}    file
// @Failure      400  {object}  errorResponse
// @Router       /api/clients/export [get]
func (h *ClientHandler) Export(c echo.Context) error {
	var q listClientsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
	}
	if err := c.Validate(q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	export, err := h.service.ExportClients(c.Request().Context(), toListClientsInput(q))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Blob(http.StatusOK, xlsxMIME, export.Data)
}

// Get handles GET /api/clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  resultResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update handles PUT /api/clients/:id. Only the fields present in the request
// are changed; uploaded files replace the stored ones.
//
// @Summary      Update a client
// @Tags         clients
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        id       path      string  true   "Client ID"
// @Param        invoice  formData  file    false  "Replacement invoice"
// @Param        lr       formData  file    false  "Replacement lorry receipt"
// @Success      200  {object}  resultResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  resultResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if isMultipart(c) {
		form, err := c.FormParams()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		}
		req = updateRequestFromForm(form)
	} else if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	invoice, lr, closeFiles, err := readDocuments(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	defer closeFiles()

	client, err := h.service.UpdateClient(c.Request().Context(), toUpdateClientInput(c.Param("id"), req, invoice, lr))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resultResponse{Success: true, Client: toClientResponse(client)})
}

// Delete handles DELETE /api/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  resultResponse
// @Failure      404  {object}  resultResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resultResponse{Success: true})
}

// Document handles GET /api/clients/:id/documents/:kind by redirecting to a
// short-lived download link.
//
// @Summary      Download a client document
// @Tags         clients
// @Security     BearerAuth
// @Param        id    path  string  true  "Client ID"
// @Param        kind  path  string  true  "invoice or lr"
// @Success      302
// @Failure      404  {object}  resultResponse
// @Router       /api/clients/{id}/documents/{kind} [get]
func (h *ClientHandler) Document(c echo.Context) error {
	kind := domain.DocumentKind(strings.ToLower(c.Param("kind")))
	url, err := h.service.DocumentURL(c.Request().Context(), c.Param("id"), kind, h.documentTTL)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Redirect(http.StatusFound, url)
}

func (h *ClientHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return c.JSON(http.StatusNotFound, resultResponse{Success: false, Message: "Client not found"})
	case errors.Is(err, domain.ErrDocumentNotFound):
		return c.JSON(http.StatusNotFound, resultResponse{Success: false, Message: "Document not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return err
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func updateRequestFromForm(form map[string][]string) updateClientRequest {
	field := func(name string) *string {
		vals, ok := form[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		v := vals[0]
		return &v
	}
	return updateClientRequest{
		Name:     field("name"),
		Deadline: field("deadline"),
		Contact:  field("contact"),
		Email:    field("email"),
		Phone:    field("phone"),
		GST:      field("gst"),
		Address:  field("address"),
		Payment:  field("payment"),
	}
}

// readDocuments opens the optional "invoice" and "lr" uploads. The returned
// func closes whatever was opened.
func readDocuments(c echo.Context) (invoice, lr *ports.Upload, closeAll func(), err error) {
	var closers []io.Closer
	closeAll = func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}
	if !isMultipart(c) {
		return nil, nil, closeAll, nil
	}

	open := func(field string) (*ports.Upload, error) {
		fh, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		closers = append(closers, f)
		return &ports.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		}, nil
	}

	if invoice, err = open("invoice"); err != nil {
		closeAll()
		return nil, nil, func() {}, err
	}
	if lr, err = open("lr"); err != nil {
		closeAll()
		return nil, nil, func() {}, err
	}
	return invoice, lr, closeAll, nil
}
