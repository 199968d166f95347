// Package notify posts report events to user-configured webhook URLs.
// Delivery is best effort: failures are logged and never block the request.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JoelBarbosa07/nomina-variable/models"

	"github.com/sirupsen/logrus"
)

type Notifier struct {
	client *http.Client
	logger *logrus.Logger
}

func NewNotifier(timeout time.Duration) *Notifier {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Notifier{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type reportEvent struct {
	Event      string     `json:"event"`
	ReportID   string     `json:"reportId"`
	UserID     string     `json:"userId"`
	EventName  string     `json:"eventName"`
	Amount     float64    `json:"amount"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// ReportApproved posts an approval event to the owner's webhook, if one is
// configured.
func (n *Notifier) ReportApproved(ctx context.Context, user *models.User, report *models.WorkReport) {
	if user.WebhookURL == "" {
		return
	}

	payload := reportEvent{
		Event:      "report.approved",
		ReportID:   report.ID,
		UserID:     report.UserID,
		EventName:  report.EventName,
		Amount:     report.CalculatedAmount,
		ApprovedAt: report.ApprovedAt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.WithError(err).Error("Failed to encode webhook payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, user.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.WithError(err).WithField("url", user.WebhookURL).Warn("Invalid webhook URL")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":   user.ID,
			"report_id": report.ID,
		}).Warn("Webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"report_id": report.ID,
			"status":    resp.StatusCode,
		}).Warn("Webhook rejected event")
		return
	}

	n.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"report_id": report.ID,
	}).Info("Webhook notified")
}
