package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/http/handlers"
)

const testSecret = "router-secret"

type fakeClients struct{ ports.ClientService }

func (fakeClients) ListClients(context.Context, ports.ListClientsInput) ([]*domain.Client, error) {
	return []*domain.Client{{ID: "1", Name: "A", Payment: domain.PaymentNotPaid}}, nil
}

func (fakeClients) GetClient(context.Context, string) (*domain.Client, error) {
	return nil, domain.ErrClientNotFound
}

type fakeReminders struct{ ports.ReminderService }

func (fakeReminders) RunScan(context.Context) (domain.ScanReport, error) {
	return domain.ScanReport{Today: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, nil
}

type fakeAuth struct{ ports.AuthService }

func bearer(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "op_1",
		"username": "alice",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + signed
}

// The router registers Prometheus collectors, so it is built once per package.
func TestRouter(t *testing.T) {
	e := NewRouter(RouterConfig{JWTSecret: testSecret}, Services{
		Auth:      fakeAuth{},
		Clients:   fakeClients{},
		Reminders: fakeReminders{},
		Readiness: handlers.NewReadinessHandler(handlers.Check{Name: "mongodb", Ping: func(context.Context) error { return nil }}),
	}, zerolog.Nop())

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
		body   string
	}{
		{"liveness is public", http.MethodGet, "/health", "", http.StatusOK, `"ok"`},
		{"readiness is public", http.MethodGet, "/health/ready", "", http.StatusOK, `"mongodb"`},
		{"metrics are public", http.MethodGet, "/metrics", "", http.StatusOK, "go_goroutines"},
		{"clients need a token", http.MethodGet, "/api/clients/all", "", http.StatusUnauthorized, `"error"`},
		{"viewer can list", http.MethodGet, "/api/clients/all", "viewer", http.StatusOK, `"id":"1"`},
		{"viewer cannot create", http.MethodPost, "/api/clients/add", "viewer", http.StatusForbidden, "forbidden"},
		{"viewer cannot scan", http.MethodPost, "/api/reminders/scan", "viewer", http.StatusForbidden, "forbidden"},
		{"admin can scan", http.MethodPost, "/api/reminders/scan", "admin", http.StatusOK, `"today":"2024-03-01"`},
		{"unknown client", http.MethodGet, "/api/clients/nope", "admin", http.StatusNotFound, "Client not found"},
		{"register needs admin", http.MethodPost, "/auth/register", "viewer", http.StatusForbidden, "forbidden"},
		{"unknown route", http.MethodGet, "/api/nothing", "admin", http.StatusNotFound, `"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", bearer(t, tc.auth))
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("expected %q in body %s", tc.body, rec.Body.String())
			}
		})
	}
}
