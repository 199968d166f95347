package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobType is a catalog entry for the event job types workers can pick from.
type JobType struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tag       string    `gorm:"uniqueIndex;not null;size:50" json:"tag"`
	Name      string    `gorm:"not null;size:100" json:"name"`
}

func (j *JobType) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
