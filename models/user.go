package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleSupervisor
}

type User struct {
	ID               string       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	Email            string       `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash     string       `gorm:"not null" json:"-"`
	Name             string       `gorm:"not null;size:200" json:"name"`
	Role             Role         `gorm:"not null;size:20" json:"role"`
	WebhookURL       string       `gorm:"size:500" json:"webhookUrl,omitempty"`
	ResetToken       *string      `gorm:"size:64" json:"-"`
	ResetTokenExpiry *time.Time   `json:"-"`
	Reports          []WorkReport `gorm:"foreignKey:UserID" json:"reports,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// CanViewReportsOf reports whether the user may read another user's reports.
func (u *User) CanViewReportsOf(userID string) bool {
	if u.IsSupervisor() {
		return true
	}
	return u.ID == userID
}

// UserSummary is the identity slice exposed in grouped supervision views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func GenerateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
