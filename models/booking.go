package models

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// CanTransitionTo reports whether the booking may move to target.
// Cancellation is allowed until the guest has checked in.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if target == BookingCancelled {
		return s == BookingPending || s == BookingConfirmed
	}
	switch s {
	case BookingPending:
		return target == BookingConfirmed
	case BookingConfirmed:
		return target == BookingCheckedIn
	case BookingCheckedIn:
		return target == BookingCheckedOut
	}
	return false
}

type Booking struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Reference    string        `gorm:"type:varchar(36);not null;unique" json:"reference"`
	GuestName    string        `gorm:"type:varchar(255);not null" json:"guest_name"`
	GuestEmail   string        `gorm:"type:varchar(255);not null" json:"guest_email"`
	GuestPhone   string        `gorm:"type:varchar(30)" json:"guest_phone"`
	RoomID       uint          `gorm:"not null;index" json:"room_id"`
	Room         Room          `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room"`
	CheckInDate  time.Time     `gorm:"not null" json:"check_in_date"`
	CheckOutDate time.Time     `gorm:"not null" json:"check_out_date"`
	Guests       int           `gorm:"not null;default:1" json:"guests"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount  float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Notes        string        `gorm:"type:text" json:"notes"`
	AddOns       []BookingAddOn `gorm:"foreignKey:BookingID" json:"add_ons"`
	CheckedInAt  *time.Time    `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time    `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

type BookingAddOn struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AddOnID   uint    `gorm:"not null" json:"add_on_id"`
	AddOn     AddOn   `gorm:"foreignKey:AddOnID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"add_on"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// AddOn is a bookable extra (spa, airport pickup, late checkout).
type AddOn struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Active      bool    `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
