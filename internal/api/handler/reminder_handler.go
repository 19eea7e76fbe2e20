package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/metrics"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

// ReminderHandler exposes the manual reminder triggers.
type ReminderHandler struct {
	service ports.ReminderService
	log     zerolog.Logger
}

func NewReminderHandler(service ports.ReminderService, log zerolog.Logger) *ReminderHandler {
	return &ReminderHandler{service: service, log: log}
}

// SendReminder handles POST /api/clients/:id/send-reminder. The reminder is
// sent even when one already went out today and even before the deadline.
//
// @Summary      Send a payment reminder now
// @Tags         reminders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  resultResponse
// @Failure      404  {object}  resultResponse
// @Failure      409  {object}  resultResponse
// @Failure      502  {object}  resultResponse
// @Router       /api/clients/{id}/send-reminder [post]
func (h *ReminderHandler) SendReminder(c echo.Context) error {
	operator, _, err := ctxOperator(c)
	if err != nil {
		return err
	}

	client, err := h.service.NotifyOne(c.Request().Context(), c.Param("id"))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrClientNotFound):
		return c.JSON(http.StatusNotFound, resultResponse{Success: false, Message: "Client not found"})
	case errors.Is(err, domain.ErrClientAlreadyPaid):
		return c.JSON(http.StatusConflict, resultResponse{Success: false, Message: "Client has already paid"})
	case errors.Is(err, domain.ErrReminderNotSent):
		return c.JSON(http.StatusBadGateway, resultResponse{Success: false, Message: "Failed to send reminder"})
	default:
		return err
	}

	h.log.Info().Str("client_id", client.ID).Str("operator", operator).Msg("manual reminder requested")
	return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "Reminder sent to " + client.Email})
}

// RunScan handles POST /api/reminders/scan and runs the overdue-payment scan
// immediately. Clients already reminded today are skipped.
//
// @Summary      Run the overdue-payment scan now
// @Tags         reminders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  scanResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/reminders/scan [post]
func (h *ReminderHandler) RunScan(c echo.Context) error {
	operator, _, err := ctxOperator(c)
	if err != nil {
		return err
	}

	h.log.Info().Str("operator", operator).Msg("manual reminder scan triggered")
	report, err := h.service.RunScan(c.Request().Context())
	metrics.ObserveScan(metrics.TriggerManual, report, err)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "client store unavailable"})
	}
	return c.JSON(http.StatusOK, toScanResponse(report))
}
