package handlers

import (
	"net/http"
	"testing"

	"github.com/JoelBarbosa07/nomina-variable/models"
)

func TestRegister(t *testing.T) {
	router := setupRouter(t)

	resp := registerUser(t, router, "ana@example.com", models.RoleEmployee)
	if resp.Token == "" {
		t.Error("expected a token in the register response")
	}
	if resp.Role != models.RoleEmployee {
		t.Errorf("role = %q, want employee", resp.Role)
	}

	// Same email again is a duplicate.
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", registerRequest{
		Email:    "ana@example.com",
		Password: "secret123",
		Name:     "Ana Otra Vez",
		Role:     models.RoleEmployee,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: status %d, want 409", w.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		req  registerRequest
	}{
		{"bad email", registerRequest{Email: "not-an-email", Password: "secret123", Name: "Ana", Role: models.RoleEmployee}},
		{"short password", registerRequest{Email: "a@b.com", Password: "abc", Name: "Ana", Role: models.RoleEmployee}},
		{"short name", registerRequest{Email: "a@b.com", Password: "secret123", Name: "An", Role: models.RoleEmployee}},
		{"bad role", registerRequest{Email: "a@b.com", Password: "secret123", Name: "Ana", Role: models.Role("boss")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "luis@example.com", models.RoleSupervisor)

	w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "luis@example.com",
		Password: "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
	var resp authResponse
	decodeBody(t, w, &resp)
	if resp.Token == "" || resp.Role != models.RoleSupervisor {
		t.Errorf("unexpected login response: %+v", resp)
	}

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "luis@example.com",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: status %d, want 401", w.Code)
	}
}

func TestResetPassword(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "ana@example.com", models.RoleEmployee)

	w := doRequest(t, router, http.MethodPost, "/api/reset-password", "", resetPasswordRequest{
		Email:       "nobody@example.com",
		NewPassword: "newpassword",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown email: status %d, want 404", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/reset-password", "", resetPasswordRequest{
		Email:       "ana@example.com",
		NewPassword: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password: status %d, want 400", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/reset-password", "", resetPasswordRequest{
		Email:       "ana@example.com",
		NewPassword: "newpassword",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset: status %d, body %s", w.Code, w.Body.String())
	}
	var resp resetPasswordResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Errorf("expected success, got %+v", resp)
	}

	// The old password no longer works, the new one does.
	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password still valid: status %d", w.Code)
	}
	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "ana@example.com",
		Password: "newpassword",
	})
	if w.Code != http.StatusOK {
		t.Errorf("new password rejected: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestUpdateWebhook(t *testing.T) {
	router := setupRouter(t)
	ana := registerUser(t, router, "ana@example.com", models.RoleEmployee)
	luis := registerUser(t, router, "luis@example.com", models.RoleEmployee)

	w := doRequest(t, router, http.MethodPatch, "/api/users/"+ana.ID+"/webhook", ana.Token, webhookRequest{
		WebhookURL: "https://hooks.example.com/ana",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update webhook: status %d, body %s", w.Code, w.Body.String())
	}
	var user models.User
	decodeBody(t, w, &user)
	if user.WebhookURL != "https://hooks.example.com/ana" {
		t.Errorf("WebhookURL = %q", user.WebhookURL)
	}

	// Missing URL is a validation failure.
	w = doRequest(t, router, http.MethodPatch, "/api/users/"+ana.ID+"/webhook", ana.Token, webhookRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing webhookUrl: status %d, want 400", w.Code)
	}

	// An employee cannot change another user's webhook.
	w = doRequest(t, router, http.MethodPatch, "/api/users/"+ana.ID+"/webhook", luis.Token, webhookRequest{
		WebhookURL: "https://hooks.example.com/luis",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("cross-user update: status %d, want 403", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/work-reports?userId=x", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/work-reports?userId=x", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", w.Code)
	}
}
