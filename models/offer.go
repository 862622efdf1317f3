package models

import "time"

type Offer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DiscountPercent float64   `gorm:"not null;default:0" json:"discount_percent"`
	ValidFrom       time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil      time.Time `gorm:"not null" json:"valid_until"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsValid reports whether the offer applies at the given time.
func (o *Offer) IsValid(at time.Time) bool {
	return o.Active && !at.Before(o.ValidFrom) && !at.After(o.ValidUntil)
}
