package models

import "time"

type SupplierInput struct {
	FullName string `gorm:"size:150;not null" json:"fullName"`
	Phone    string `gorm:"size:50" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
}

type Supplier struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	SupplierInput
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Supplier) TableName() string { return "suppliers" }

type SupplierPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}
