package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JoelBarbosa07/nomina-variable/config"
	"github.com/JoelBarbosa07/nomina-variable/database"
	"github.com/JoelBarbosa07/nomina-variable/middleware"
	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/notify"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
)

// setupRouter opens a per-test in-memory database and wires the API routes
// the way main does.
func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	if err := database.Open(sqlite.Open(dsn)); err != nil {
		t.Fatalf("open database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiration:  time.Hour,
		WebhookTimeout: time.Second,
	}
	middleware.SetJWTSecret(cfg.JWTSecret)

	authHandler := NewAuthHandler(cfg)
	reportHandler := NewReportHandler(cfg)
	supervisorHandler := NewSupervisorHandler(cfg, notify.NewNotifier(time.Second))

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/reset-password", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)
			r.Post("/work-reports", reportHandler.Create)
			r.Get("/work-reports", reportHandler.List)
			r.Get("/dashboard-stats", reportHandler.DashboardStats)
			r.Patch("/users/{id}/webhook", authHandler.UpdateWebhook)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleSupervisor))
				r.Get("/supervision-reports", supervisorHandler.List)
				r.Get("/supervision-reports/export", supervisorHandler.Export)
				r.Patch("/work-reports/{id}/approve", supervisorHandler.Approve)
				r.Patch("/work-reports/{id}/reject", supervisorHandler.Reject)
			})
		})
	})
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, router http.Handler, email string, role models.Role) authResponse {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", registerRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Test User",
		Role:     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, w.Code, w.Body.String())
	}

	var resp authResponse
	decodeBody(t, w, &resp)
	return resp
}

func hourlyReportRequest(userID string, rate float64) createReportRequest {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return createReportRequest{
		UserID:      userID,
		JobType:     "dj",
		EventName:   "Boda García",
		EventDate:   start,
		StartTime:   start,
		EndTime:     start.Add(4 * time.Hour),
		PaymentType: models.PaymentHourly,
		HourlyRate:  &rate,
	}
}

func submitReport(t *testing.T, router http.Handler, token string, req createReportRequest) models.WorkReport {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/work-reports", token, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit report: status %d, body %s", w.Code, w.Body.String())
	}

	var report models.WorkReport
	decodeBody(t, w, &report)
	return report
}
