package models

import (
	"math"
	"time"
)

type SalesItem struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id,omitempty"`
	InvoiceID   string  `gorm:"size:36;index;not null" json:"invoiceId,omitempty"`
	ProductID   string  `gorm:"size:36;index" json:"productId"`
	ProductName string  `gorm:"size:150" json:"productName"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
}

func (SalesItem) TableName() string { return "sales_items" }

// PaymentHistory is one row of "sales_payments".
type PaymentHistory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	InvoiceID string    `gorm:"size:36;index;not null" json:"invoiceId,omitempty"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Date      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date"`
}

func (PaymentHistory) TableName() string { return "sales_payments" }

type SalesInvoice struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	ClientName     *string          `gorm:"size:150" json:"clientName,omitempty"`
	ClientPhone    *string          `gorm:"size:50" json:"clientPhone,omitempty"`
	Items          []SalesItem      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount    float64          `gorm:"not null" json:"totalAmount"`
	PaidAmount     float64          `gorm:"not null" json:"paidAmount"`
	DebtAmount     float64          `gorm:"not null" json:"debtAmount"`
	Date           time.Time        `gorm:"index;not null;default:CURRENT_TIMESTAMP" json:"date"`
	PaymentHistory []PaymentHistory `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"paymentHistory"`
}

func (SalesInvoice) TableName() string { return "sales_invoices" }

type SalesInvoiceInput struct {
	ClientName  *string     `json:"clientName,omitempty"`
	ClientPhone *string     `json:"clientPhone,omitempty"`
	Items       []SalesItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	PaidAmount  float64     `json:"paidAmount"`
	// DebtAmount is informational; the stored debt is always total minus paid.
	DebtAmount float64 `json:"debtAmount"`
}

// SalesHeader is the "sales_invoices" row written before items and payments exist.
type SalesHeader struct {
	ClientName  *string `json:"clientName,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
	DebtAmount  float64 `json:"debtAmount"`
}

// Header is the invoice row to store. The debt is recomputed and never negative.
func (in SalesInvoiceInput) Header() SalesHeader {
	return SalesHeader{
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		TotalAmount: in.TotalAmount,
		PaidAmount:  in.PaidAmount,
		DebtAmount:  math.Max(0, in.TotalAmount-in.PaidAmount),
	}
}

// SalesPaymentInput is a new "sales_payments" row.
type SalesPaymentInput struct {
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
}

// DebtSettlement is the invoice patch written after a debt payment.
type DebtSettlement struct {
	PaidAmount float64 `json:"paidAmount"`
	DebtAmount float64 `json:"debtAmount"`
}

// Settle applies a payment of amount; the debt never drops below zero.
func (inv SalesInvoice) Settle(amount float64) DebtSettlement {
	return DebtSettlement{
		PaidAmount: inv.PaidAmount + amount,
		DebtAmount: math.Max(0, inv.DebtAmount-amount),
	}
}
