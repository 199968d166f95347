package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JoelBarbosa07/nomina-variable/config"
	"github.com/JoelBarbosa07/nomina-variable/database"
	"github.com/JoelBarbosa07/nomina-variable/httperr"
	"github.com/JoelBarbosa07/nomina-variable/middleware"
	"github.com/JoelBarbosa07/nomina-variable/models"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		config: cfg,
	}
}

type registerRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

type authResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httperr.Render(w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(req.Email, "@") {
		httperr.Render(w, httperr.Validation("email inválido"))
		return
	}
	if len(req.Password) < 6 {
		httperr.Render(w, httperr.Validation("la contraseña debe tener al menos 6 caracteres"))
		return
	}
	if len(strings.TrimSpace(req.Name)) < 3 {
		httperr.Render(w, httperr.Validation("el nombre debe tener al menos 3 caracteres"))
		return
	}
	if !req.Role.Valid() {
		httperr.Render(w, httperr.Validation("el rol debe ser employee o supervisor"))
		return
	}

	var existing models.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&existing).Error; err == nil {
		httperr.Render(w, httperr.Duplicate("el usuario ya existe"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")

	writeJSON(w, http.StatusCreated, authResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		Token: token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httperr.Render(w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		httperr.Render(w, httperr.Unauthorized("credenciales inválidas"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Render(w, httperr.Unauthorized("credenciales inválidas"))
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		Token: token,
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type resetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httperr.Render(w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if len(req.NewPassword) < 8 {
		httperr.Render(w, httperr.Validation("la contraseña debe tener al menos 8 caracteres"))
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFound("usuario no encontrado")
			}
			return httperr.Internal(err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return httperr.Internal(err)
		}

		// Any outstanding reset token is consumed with the password change.
		return tx.Model(&user).Updates(map[string]interface{}{
			"password_hash":      string(hashedPassword),
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
	})
	if err != nil {
		httperr.Render(w, err)
		return
	}

	log.WithField("email", req.Email).Info("password reset")

	writeJSON(w, http.StatusOK, resetPasswordResponse{
		Success: true,
		Message: "contraseña actualizada exitosamente",
	})
}

type webhookRequest struct {
	WebhookURL string `json:"webhookUrl"`
}

func (h *AuthHandler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		httperr.Render(w, httperr.Unauthorized("token requerido"))
		return
	}

	id := chi.URLParam(r, "id")
	if actor.ID != id && !actor.IsSupervisor() {
		httperr.Render(w, httperr.Forbidden("acceso denegado"))
		return
	}

	var req webhookRequest
	if err := decodeJSON(r, &req); err != nil {
		httperr.Render(w, err)
		return
	}
	if strings.TrimSpace(req.WebhookURL) == "" {
		httperr.Render(w, httperr.Validation("webhookUrl es requerido"))
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Render(w, httperr.NotFound("usuario no encontrado"))
			return
		}
		httperr.Render(w, httperr.Internal(err))
		return
	}

	if err := database.GetDB().Model(&user).Update("webhook_url", strings.TrimSpace(req.WebhookURL)).Error; err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
