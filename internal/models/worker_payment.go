package models

import "time"

type WorkerPaymentInput struct {
	WorkerID string  `gorm:"size:36;index;not null" json:"workerId"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Period   string  `gorm:"size:50" json:"period"`
}

// WorkerPayment is an append-only payroll ledger entry.
type WorkerPayment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	WorkerPaymentInput
	Date time.Time `gorm:"index;not null;default:CURRENT_TIMESTAMP" json:"date"`
}

func (WorkerPayment) TableName() string { return "worker_payments" }
