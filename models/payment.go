package models

import "time"

// Payment status for booking deposits.
const (
	PaymentPending   = "pending"
	PaymentSuccess   = "success"
	PaymentFailed    = "failed"
	PaymentExpired   = "expired"
	PaymentCancelled = "cancelled"
)

type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	BookingID     uint       `gorm:"not null;index" json:"booking_id"`
	Booking       Booking    `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SnapToken     string     `gorm:"type:varchar(255)" json:"snap_token,omitempty"`
	RedirectURL   string     `gorm:"type:varchar(255)" json:"redirect_url,omitempty"`
	GatewayRef    string     `gorm:"type:varchar(100);index" json:"gateway_ref,omitempty"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
