package models

import "time"

type OrderStatus string

// Order lifecycle. Statuses advance strictly forward; cancelled is the
// only escape and is reachable from every non-terminal status.
const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	BookingID        *uint       `gorm:"index" json:"booking_id,omitempty"`
	Booking          *Booking    `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	GuestName        string      `gorm:"type:varchar(255);not null" json:"guest_name"`
	RoomNumber       string      `gorm:"type:varchar(10)" json:"room_number"`
	DeliveryLocation string      `gorm:"type:varchar(255)" json:"delivery_location"`
	Status           OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	ScheduledFor     *time.Time  `json:"scheduled_for,omitempty"`
	DeliveredAt      *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
	Items            []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
