package models

import "time"

type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderReceived  PurchaseOrderStatus = "received"
	PurchaseOrderCancelled PurchaseOrderStatus = "cancelled"
)

// CanTransitionTo reports whether the purchase order may move to
// target. Cancellation is allowed until goods are received.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	if target == PurchaseOrderCancelled {
		return s == PurchaseOrderDraft || s == PurchaseOrderOrdered
	}
	switch s {
	case PurchaseOrderDraft:
		return target == PurchaseOrderOrdered
	case PurchaseOrderOrdered:
		return target == PurchaseOrderReceived
	}
	return false
}

type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseOrder struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SupplierID  *uint               `gorm:"index" json:"supplier_id,omitempty"`
	Supplier    *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	TotalAmount float64             `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	Notes       string              `gorm:"type:text" json:"notes"`
	AutoCreated bool                `gorm:"not null;default:false" json:"auto_created"`
	OrderedAt   *time.Time          `json:"ordered_at,omitempty"`
	ReceivedAt  *time.Time          `json:"received_at,omitempty"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null" json:"updated_at"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
}

type PurchaseOrderItem struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint          `gorm:"not null;index" json:"purchase_order_id"`
	PurchaseOrder   PurchaseOrder `gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID          uint          `gorm:"not null;index" json:"item_id"`
	Item            InventoryItem `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"item"`
	Quantity        float64       `gorm:"not null" json:"quantity"`
	UnitCost        float64       `gorm:"type:decimal(10,2);not null" json:"unit_cost"`
	LineTotal       float64       `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt       time.Time     `json:"created_at"`
}
