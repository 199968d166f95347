package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentType string

const (
	PaymentHourly PaymentType = "hourly"
	PaymentFixed  PaymentType = "fixed"
)

func (p PaymentType) Valid() bool {
	return p == PaymentHourly || p == PaymentFixed
}

type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusApproved ReportStatus = "approved"
	StatusRejected ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// JobTypeOther is the stored tag when the worker supplies a free-text job type.
const JobTypeOther = "other"

type WorkReport struct {
	ID               string       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	UserID           string       `gorm:"type:uuid;not null;index" json:"userId"`
	User             *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JobType          string       `gorm:"not null;size:50" json:"jobType"`
	CustomJobType    string       `gorm:"size:100" json:"customJobType,omitempty"`
	EventName        string       `gorm:"not null;size:200" json:"eventName"`
	EventDate        time.Time    `gorm:"not null" json:"eventDate"`
	StartTime        time.Time    `gorm:"not null" json:"startTime"`
	EndTime          time.Time    `gorm:"not null" json:"endTime"`
	Location         string       `gorm:"size:200" json:"location,omitempty"`
	Description      string       `gorm:"size:500" json:"description,omitempty"`
	PaymentType      PaymentType  `gorm:"not null;size:10" json:"paymentType"`
	HourlyRate       *float64     `json:"hourlyRate,omitempty"`
	FixedRate        *float64     `json:"fixedRate,omitempty"`
	HoursWorked      float64      `gorm:"not null" json:"hoursWorked"`
	CalculatedAmount float64      `gorm:"not null" json:"calculatedAmount"`
	Status           ReportStatus `gorm:"not null;size:20;default:pending;index" json:"status"`
	SubmittedAt      time.Time    `gorm:"not null;index" json:"submittedAt"`
	ApprovedAt       *time.Time   `json:"approvedAt,omitempty"`
	RejectedAt       *time.Time   `json:"rejectedAt,omitempty"`
	ApprovedByID     *string      `gorm:"type:uuid" json:"approvedById,omitempty"`
	RejectedByID     *string      `gorm:"type:uuid" json:"rejectedById,omitempty"`
	// Version backs the conditional update guarding approve/reject races.
	Version uint `gorm:"not null;default:0" json:"-"`
}

func (r *WorkReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *WorkReport) IsPending() bool {
	return r.Status == StatusPending
}

// EffectiveJobType resolves the display job type: the free-text custom type
// when the stored tag is "other", the tag itself otherwise.
func (r *WorkReport) EffectiveJobType() string {
	if r.JobType == JobTypeOther && r.CustomJobType != "" {
		return r.CustomJobType
	}
	return r.JobType
}
