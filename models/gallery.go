package models

import "time"

type GalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	ImageUrl  string    `gorm:"type:varchar(255);not null" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
