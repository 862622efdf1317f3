package models

import "time"

// Room occupancy status.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Housekeeping status.
const (
	RoomClean = "clean"
	RoomDirty = "dirty"
)

type RoomType struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null;unique" json:"name"`
	BaseRate    float64 `gorm:"type:decimal(10,2);not null" json:"base_rate"`
	Capacity    int     `gorm:"not null;default:2" json:"capacity"`
	Description string  `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Room struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Number       string   `gorm:"type:varchar(10);not null;unique" json:"number"`
	RoomTypeID   uint     `gorm:"not null" json:"room_type_id"`
	RoomType     RoomType `gorm:"foreignKey:RoomTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room_type"`
	Floor        int      `json:"floor"`
	Status       string   `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Housekeeping string   `gorm:"type:varchar(10);not null;default:'clean'" json:"housekeeping"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HousekeepingLog records a cleaning pass on a room.
type HousekeepingLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	Room      Room      `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"room"`
	UserID    *uint     `json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CleanedAt time.Time `gorm:"not null" json:"cleaned_at"`
	CreatedAt time.Time `json:"created_at"`
}
