package models

import "time"

// Stock locations. Quantities are partitioned per location; the total
// is what the restock scan compares against the minimum.
const (
	LocationMain         = "main"
	LocationKitchen      = "kitchen"
	LocationHousekeeping = "housekeeping"
)

type InventoryItem struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"type:varchar(255);not null;unique" json:"name"`
	Unit              string  `gorm:"type:varchar(20);not null" json:"unit"`
	MainStock         float64 `gorm:"not null;default:0" json:"main_stock"`
	KitchenStock      float64 `gorm:"not null;default:0" json:"kitchen_stock"`
	HousekeepingStock float64 `gorm:"not null;default:0" json:"housekeeping_stock"`
	MinStockLevel     float64 `gorm:"not null;default:0" json:"min_stock_level"`
	UnitCost          float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"unit_cost"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// CurrentStock sums the item's quantity across all locations.
func (i *InventoryItem) CurrentStock() float64 {
	return i.MainStock + i.KitchenStock + i.HousekeepingStock
}

// IsLowStock reports whether the item is at or below its minimum.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock() <= i.MinStockLevel
}

// StockTransfer records a quantity moved between two locations.
type StockTransfer struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ItemID    uint          `gorm:"not null;index" json:"item_id"`
	Item      InventoryItem `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item"`
	From      string        `gorm:"column:from_location;type:varchar(20);not null" json:"from"`
	To        string        `gorm:"column:to_location;type:varchar(20);not null" json:"to"`
	Quantity  float64       `gorm:"not null" json:"quantity"`
	UserID    *uint         `json:"user_id,omitempty"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
}
