package models

import "time"

// AuthAccount holds gateway credentials. It never leaves the gateway.
type AuthAccount struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Confirmed    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AuthAccount) TableName() string { return "auth_accounts" }
