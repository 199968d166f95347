package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JoelBarbosa07/nomina-variable/config"
	"github.com/JoelBarbosa07/nomina-variable/database"
	"github.com/JoelBarbosa07/nomina-variable/httperr"
	"github.com/JoelBarbosa07/nomina-variable/middleware"
	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/payroll"
	"github.com/JoelBarbosa07/nomina-variable/stats"

	log "github.com/sirupsen/logrus"
)

type ReportHandler struct {
	config *config.Config
}

func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		config: cfg,
	}
}

type createReportRequest struct {
	UserID        string             `json:"userId"`
	JobType       string             `json:"jobType"`
	CustomJobType string             `json:"customJobType"`
	EventName     string             `json:"eventName"`
	EventDate     time.Time          `json:"eventDate"`
	StartTime     time.Time          `json:"startTime"`
	EndTime       time.Time          `json:"endTime"`
	Location      string             `json:"location"`
	Description   string             `json:"description"`
	PaymentType   models.PaymentType `json:"paymentType"`
	HourlyRate    *float64           `json:"hourlyRate"`
	FixedRate     *float64           `json:"fixedRate"`
}

// Create submits a work report. Hours worked and the pay amount are derived
// server-side from the timestamps and rates; the report starts out pending.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		httperr.Render(w, httperr.Unauthorized("token requerido"))
		return
	}

	var req createReportRequest
	if err := decodeJSON(r, &req); err != nil {
		httperr.Render(w, err)
		return
	}

	if req.UserID == "" {
		req.UserID = actor.ID
	}
	if req.UserID != actor.ID && !actor.IsSupervisor() {
		httperr.Render(w, httperr.Forbidden("no puedes registrar reportes de otro usuario"))
		return
	}

	if strings.TrimSpace(req.EventName) == "" {
		httperr.Render(w, httperr.Validation("eventName es requerido"))
		return
	}
	if req.EventDate.IsZero() {
		httperr.Render(w, httperr.Validation("eventDate es requerido"))
		return
	}

	jobType := strings.TrimSpace(req.JobType)
	customJobType := strings.TrimSpace(req.CustomJobType)
	if customJobType != "" {
		jobType = models.JobTypeOther
	} else {
		if jobType == "" {
			httperr.Render(w, httperr.Validation("jobType es requerido"))
			return
		}
		var count int64
		if err := database.GetDB().WithContext(r.Context()).Model(&models.JobType{}).
			Where("tag = ?", jobType).Count(&count).Error; err != nil {
			httperr.Render(w, httperr.Internal(err))
			return
		}
		if count == 0 {
			httperr.Render(w, httperr.Validation("tipo de trabajo desconocido"))
			return
		}
	}

	if err := payroll.ValidateSubmission(req.PaymentType, req.StartTime, req.EndTime, req.HourlyRate, req.FixedRate); err != nil {
		httperr.Render(w, err)
		return
	}

	hours := payroll.Hours(req.StartTime, req.EndTime)
	amount := payroll.Amount(req.PaymentType, hours, req.HourlyRate, req.FixedRate)

	report := models.WorkReport{
		UserID:           req.UserID,
		JobType:          jobType,
		CustomJobType:    customJobType,
		EventName:        strings.TrimSpace(req.EventName),
		EventDate:        req.EventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Location:         strings.TrimSpace(req.Location),
		Description:      strings.TrimSpace(req.Description),
		PaymentType:      req.PaymentType,
		HourlyRate:       req.HourlyRate,
		FixedRate:        req.FixedRate,
		HoursWorked:      hours,
		CalculatedAmount: amount,
		Status:           models.StatusPending,
		SubmittedAt:      time.Now(),
	}

	if err := database.GetDB().WithContext(r.Context()).Create(&report).Error; err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	log.WithFields(log.Fields{
		"report_id": report.ID,
		"user_id":   report.UserID,
		"amount":    report.CalculatedAmount,
	}).Info("work report submitted")

	writeJSON(w, http.StatusCreated, report)
}

// List returns a user's reports ordered by most recent submission.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		httperr.Render(w, httperr.Unauthorized("token requerido"))
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httperr.Render(w, httperr.Validation("userId es requerido"))
		return
	}
	if !actor.CanViewReportsOf(userID) {
		httperr.Render(w, httperr.Forbidden("acceso denegado"))
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	reports := make([]models.WorkReport, 0)
	err := database.GetDB().WithContext(r.Context()).
		Preload("User").
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

// DashboardStats reduces a user's reports into the dashboard summary.
// A user with no reports gets all-zero stats, not an error.
func (h *ReportHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		httperr.Render(w, httperr.Unauthorized("token requerido"))
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httperr.Render(w, httperr.Validation("userId es requerido"))
		return
	}
	if !actor.CanViewReportsOf(userID) {
		httperr.Render(w, httperr.Forbidden("acceso denegado"))
		return
	}

	var reports []models.WorkReport
	err := database.GetDB().WithContext(r.Context()).
		Where("user_id = ?", userID).
		Find(&reports).Error
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, stats.BuildDashboard(reports))
}
