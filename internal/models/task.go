package model

import (
	"time"

	"task-manager-api.com/task-manager-api/internal/constants"
)

// Task timestamps are stored in UTC. gorm's automatic time tracking is
// disabled so the service clock stays authoritative.
type Task struct {
	ID              string               `gorm:"primaryKey;size:36" json:"id"`
	OwnerID         string               `gorm:"size:36;not null;index" json:"owner_id"`
	Title           string               `gorm:"not null" json:"title"`
	Description     string               `gorm:"not null" json:"description"`
	CreatedAt       time.Time            `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	DueDate         *time.Time           `json:"due_date"`
	OriginalDueDate *time.Time           `json:"original_due_date"`
	Importance      constants.Importance `gorm:"type:varchar(20);not null" json:"importance"`
	Completed       bool                 `gorm:"not null;default:false" json:"completed"`
	CompletedDate   *time.Time           `json:"completed_date"`
	Version         uint                 `gorm:"not null;default:1" json:"version"`
}
