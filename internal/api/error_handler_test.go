package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("update client: %w", domain.ErrClientNotFound), http.StatusNotFound, "client not found"},
		{domain.ErrDocumentNotFound, http.StatusNotFound, "document not found"},
		{domain.ErrClientAlreadyPaid, http.StatusConflict, "client has already paid"},
		{fmt.Errorf("%w: smtp", domain.ErrReminderNotSent), http.StatusBadGateway, "failed to send reminder"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handle := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		handle(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
			continue
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Error != tc.msg {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.msg, resp.Error)
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
