package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JoelBarbosa07/nomina-variable/config"
	"github.com/JoelBarbosa07/nomina-variable/database"
	"github.com/JoelBarbosa07/nomina-variable/export"
	"github.com/JoelBarbosa07/nomina-variable/httperr"
	"github.com/JoelBarbosa07/nomina-variable/middleware"
	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/notify"
	"github.com/JoelBarbosa07/nomina-variable/stats"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SupervisorHandler struct {
	config   *config.Config
	notifier *notify.Notifier
}

func NewSupervisorHandler(cfg *config.Config, notifier *notify.Notifier) *SupervisorHandler {
	return &SupervisorHandler{
		config:   cfg,
		notifier: notifier,
	}
}

func (h *SupervisorHandler) queryReports(r *http.Request) ([]models.WorkReport, error) {
	query := database.GetDB().WithContext(r.Context()).
		Preload("User").
		Order("submitted_at desc")

	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ReportStatus(status).Valid() {
			return nil, httperr.Validation("status debe ser pending, approved o rejected")
		}
		query = query.Where("status = ?", status)
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	reports := make([]models.WorkReport, 0)
	if err := query.Find(&reports).Error; err != nil {
		return nil, httperr.Internal(err)
	}
	return reports, nil
}

// List returns reports grouped per owning user, with approved-only hour and
// earnings totals and a pending count per group.
func (h *SupervisorHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.queryReports(r)
	if err != nil {
		httperr.Render(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats.GroupByUser(reports))
}

type decisionResponse struct {
	models.WorkReport
	JobType       string   `json:"jobType"`
	TotalEarnings *float64 `json:"totalEarnings,omitempty"`
}

// transition moves a pending report to the given terminal status through a
// conditional update on (id, status, version), so two supervisors deciding
// the same report concurrently cannot both win.
func (h *SupervisorHandler) transition(r *http.Request, status models.ReportStatus) (*models.WorkReport, error) {
	id := chi.URLParam(r, "id")
	actor := middleware.GetUserFromContext(r.Context())
	db := database.GetDB().WithContext(r.Context())

	var report models.WorkReport
	if err := db.Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("reporte no encontrado")
		}
		return nil, httperr.Internal(err)
	}
	if !report.IsPending() {
		return nil, httperr.Conflict(fmt.Sprintf("el reporte ya fue %s", report.Status))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  status,
		"version": report.Version + 1,
	}
	switch status {
	case models.StatusApproved:
		updates["approved_at"] = now
		updates["approved_by_id"] = actor.ID
	case models.StatusRejected:
		updates["rejected_at"] = now
		updates["rejected_by_id"] = actor.ID
	}

	result := db.Model(&models.WorkReport{}).
		Where("id = ? AND status = ? AND version = ?", id, models.StatusPending, report.Version).
		Updates(updates)
	if result.Error != nil {
		return nil, httperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, httperr.Conflict("el reporte ya fue procesado")
	}

	if err := db.Preload("User").Where("id = ?", id).First(&report).Error; err != nil {
		return nil, httperr.Internal(err)
	}

	log.WithFields(log.Fields{
		"report_id":     report.ID,
		"user_id":       report.UserID,
		"status":        report.Status,
		"supervisor_id": actor.ID,
	}).Info("report decided")

	return &report, nil
}

func (h *SupervisorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	report, err := h.transition(r, models.StatusApproved)
	if err != nil {
		httperr.Render(w, err)
		return
	}

	// Display-only rollup of the owner's approved earnings to date.
	var totalEarnings float64
	err = database.GetDB().WithContext(r.Context()).
		Model(&models.WorkReport{}).
		Where("user_id = ? AND status = ?", report.UserID, models.StatusApproved).
		Select("COALESCE(SUM(calculated_amount), 0)").
		Scan(&totalEarnings).Error
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	if report.User != nil {
		h.notifier.ReportApproved(r.Context(), report.User, report)
	}

	writeJSON(w, http.StatusOK, decisionResponse{
		WorkReport:    *report,
		JobType:       report.EffectiveJobType(),
		TotalEarnings: &totalEarnings,
	})
}

func (h *SupervisorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	report, err := h.transition(r, models.StatusRejected)
	if err != nil {
		httperr.Render(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decisionResponse{
		WorkReport: *report,
		JobType:    report.EffectiveJobType(),
	})
}

// Export streams the grouped supervision data as a PDF or Excel document,
// honoring the same status/userId filters as List.
func (h *SupervisorHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	reports, err := h.queryReports(r)
	if err != nil {
		httperr.Render(w, err)
		return
	}
	groups := stats.GroupByUser(reports)

	var (
		data        []byte
		contentType string
		filename    string
	)
	switch format {
	case "pdf":
		data, err = export.PDF(groups)
		contentType = "application/pdf"
		filename = "reporte-supervision.pdf"
	case "excel", "xlsx":
		data, err = export.Excel(groups)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "reporte-supervision.xlsx"
	default:
		httperr.Render(w, httperr.Validation("format debe ser pdf o excel"))
		return
	}
	if err != nil {
		httperr.Render(w, httperr.Internal(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
