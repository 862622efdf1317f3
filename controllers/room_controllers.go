package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/live"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// GetAllRoomTypes -> public room type catalogue
func (rc *RoomController) GetAllRoomTypes(c *gin.Context) {
	var roomTypes []models.RoomType
	if err := rc.DB.Find(&roomTypes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of room types", roomTypes)
}

// CreateRoomType
func (rc *RoomController) CreateRoomType(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		BaseRate    float64 `json:"base_rate" binding:"required,gt=0"`
		Capacity    int     `json:"capacity" binding:"required,min=1"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	roomType := models.RoomType{
		Name:        req.Name,
		BaseRate:    req.BaseRate,
		Capacity:    req.Capacity,
		Description: req.Description,
	}
	if err := rc.DB.Create(&roomType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Room type created", roomType)
}

// GetAllRooms -> list rooms, optional status filter
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	query := rc.DB.Preload("RoomType")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Order("number asc").Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// CreateRoom
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req struct {
		Number     string `json:"number" binding:"required"`
		RoomTypeID uint   `json:"room_type_id" binding:"required"`
		Floor      int    `json:"floor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var roomType models.RoomType
	if err := rc.DB.First(&roomType, req.RoomTypeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room type not found"))
		return
	}

	room := models.Room{
		Number:       req.Number,
		RoomTypeID:   roomType.ID,
		Floor:        req.Floor,
		Status:       models.RoomAvailable,
		Housekeeping: models.RoomClean,
	}
	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Room created", room)
}

// UpdateRoomStatus -> available / occupied / maintenance
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	var room models.Room
	if err := rc.DB.First(&room, c.Param("room_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Status {
	case models.RoomAvailable, models.RoomOccupied, models.RoomMaintenance:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown room status"))
		return
	}

	room.Status = req.Status
	room.UpdatedAt = time.Now()
	if err := rc.DB.Save(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastRoomUpdate(room)

	utils.RespondJSON(c, http.StatusOK, "Room status updated", room)
}

// MarkRoomClean -> housekeeping logs a cleaning pass
func (rc *RoomController) MarkRoomClean(c *gin.Context) {
	var room models.Room
	if err := rc.DB.First(&room, c.Param("room_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var userID *uint
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			userID = &id
		}
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		room.Housekeeping = models.RoomClean
		room.UpdatedAt = time.Now()
		if err := tx.Save(&room).Error; err != nil {
			return err
		}

		logEntry := models.HousekeepingLog{
			RoomID:    room.ID,
			UserID:    userID,
			Notes:     req.Notes,
			CleanedAt: time.Now(),
			CreatedAt: time.Now(),
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastRoomUpdate(room)

	utils.RespondJSON(c, http.StatusOK, "Room marked clean", room)
}

// GetHousekeepingLogs -> cleaning history, newest first
func (rc *RoomController) GetHousekeepingLogs(c *gin.Context) {
	var logs []models.HousekeepingLog
	query := rc.DB.Preload("Room")
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if err := query.Order("cleaned_at desc").Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Housekeeping logs", logs)
}
