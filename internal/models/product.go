package models

import "time"

type FuelType string

const (
	FuelDiesel  FuelType = "DIESEL"
	FuelEssence FuelType = "ESSENCE"
)

// lowStockRatio: a product is low on stock once it falls to 30% of its initial quantity.
const lowStockRatio = 0.3

type ProductInput struct {
	Name            string   `gorm:"size:150;not null" json:"name"`
	Brand           string   `gorm:"size:100" json:"brand"`
	Reference       string   `gorm:"size:100;index" json:"reference"`
	Barcode         string   `gorm:"size:100;index" json:"barcode"`
	FuelType        FuelType `gorm:"size:20" json:"fuelType"`
	SupplierID      string   `gorm:"size:36;index" json:"supplierId"`
	InitialQuantity int      `gorm:"not null;default:0" json:"initialQuantity"`
	CurrentQuantity int      `gorm:"not null;default:0" json:"currentQuantity"`
	PurchasePrice   float64  `gorm:"not null;default:0" json:"purchasePrice"`
	SellingPrice    float64  `gorm:"not null;default:0" json:"sellingPrice"`
}

type Product struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	ProductInput
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Product) TableName() string { return "products" }

func (p Product) LowStock() bool {
	return float64(p.CurrentQuantity) <= float64(p.InitialQuantity)*lowStockRatio
}

type ProductPatch struct {
	Name            *string   `json:"name,omitempty"`
	Brand           *string   `json:"brand,omitempty"`
	Reference       *string   `json:"reference,omitempty"`
	Barcode         *string   `json:"barcode,omitempty"`
	FuelType        *FuelType `json:"fuelType,omitempty"`
	SupplierID      *string   `json:"supplierId,omitempty"`
	InitialQuantity *int      `json:"initialQuantity,omitempty"`
	CurrentQuantity *int      `json:"currentQuantity,omitempty"`
	PurchasePrice   *float64  `json:"purchasePrice,omitempty"`
	SellingPrice    *float64  `json:"sellingPrice,omitempty"`
}

// SnapshotPatch captures the stock and price fields of p, used to undo a stock adjustment.
func (p Product) SnapshotPatch() ProductPatch {
	qty, buy, sell := p.CurrentQuantity, p.PurchasePrice, p.SellingPrice
	return ProductPatch{CurrentQuantity: &qty, PurchasePrice: &buy, SellingPrice: &sell}
}
