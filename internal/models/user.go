package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Timezone     string    `gorm:"not null" json:"timezone"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}
