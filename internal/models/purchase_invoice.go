package models

import "time"

type PurchaseInvoiceInput struct {
	ProductID     string  `gorm:"size:36;index;not null" json:"productId"`
	SupplierID    string  `gorm:"size:36;index" json:"supplierId"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	PurchasePrice float64 `gorm:"not null" json:"purchasePrice"`
	SellingPrice  float64 `gorm:"not null" json:"sellingPrice"`
}

// Total is quantity × purchase price.
func (in PurchaseInvoiceInput) Total() float64 {
	return float64(in.Quantity) * in.PurchasePrice
}

type PurchaseInvoice struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	PurchaseInvoiceInput
	TotalAmount float64   `gorm:"not null" json:"totalAmount"`
	Date        time.Time `gorm:"index;not null;default:CURRENT_TIMESTAMP" json:"date"`
}

func (PurchaseInvoice) TableName() string { return "purchase_invoices" }

type PurchaseInvoicePatch struct {
	ProductID     *string  `json:"productId,omitempty"`
	SupplierID    *string  `json:"supplierId,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty"`
	SellingPrice  *float64 `json:"sellingPrice,omitempty"`
	TotalAmount   *float64 `json:"totalAmount,omitempty"`
}
