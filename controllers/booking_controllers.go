package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/live"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// CreateBooking -> guest books a room with optional add-ons
func (bc *BookingController) CreateBooking(c *gin.Context) {
	type AddOnReq struct {
		AddOnID  uint `json:"add_on_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	}

	type ReqBody struct {
		GuestName    string     `json:"guest_name" binding:"required"`
		GuestEmail   string     `json:"guest_email" binding:"required,email"`
		GuestPhone   string     `json:"guest_phone"`
		RoomID       uint       `json:"room_id" binding:"required"`
		CheckInDate  time.Time  `json:"check_in_date" binding:"required"`
		CheckOutDate time.Time  `json:"check_out_date" binding:"required"`
		Guests       int        `json:"guests" binding:"required,min=1"`
		Notes        string     `json:"notes"`
		AddOns       []AddOnReq `json:"add_ons"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !body.CheckOutDate.After(body.CheckInDate) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("check-out date must be after check-in date"))
		return
	}

	var room models.Room
	if err := bc.DB.Preload("RoomType").First(&room, body.RoomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	if body.Guests > room.RoomType.Capacity {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("room sleeps at most %d guests", room.RoomType.Capacity))
		return
	}

	booking := models.Booking{
		Reference:    utils.GenerateBookingReference(),
		GuestName:    body.GuestName,
		GuestEmail:   body.GuestEmail,
		GuestPhone:   body.GuestPhone,
		RoomID:       room.ID,
		CheckInDate:  body.CheckInDate,
		CheckOutDate: body.CheckOutDate,
		Guests:       body.Guests,
		Notes:        body.Notes,
		Status:       models.BookingPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		// Reject a date overlap with any booking that still holds the room.
		var overlapping int64
		tx.Model(&models.Booking{}).
			Where("room_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
				room.ID,
				[]models.BookingStatus{models.BookingPending, models.BookingConfirmed, models.BookingCheckedIn},
				body.CheckOutDate, body.CheckInDate).
			Count(&overlapping)
		if overlapping > 0 {
			return errors.New("room is not available for the selected dates")
		}

		nights := int(body.CheckOutDate.Sub(body.CheckInDate).Hours() / 24)
		total := float64(nights) * room.RoomType.BaseRate

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		for _, req := range body.AddOns {
			var addOn models.AddOn
			if err := tx.First(&addOn, req.AddOnID).Error; err != nil {
				return fmt.Errorf("add-on %d not found", req.AddOnID)
			}
			if !addOn.Active {
				return fmt.Errorf("add-on %s is not available", addOn.Name)
			}
			row := models.BookingAddOn{
				BookingID: booking.ID,
				AddOnID:   addOn.ID,
				Quantity:  req.Quantity,
				Price:     addOn.Price,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			total += float64(req.Quantity) * addOn.Price
		}

		booking.TotalAmount = total
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		title := "New booking"
		notif := models.Notification{
			Title:     &title,
			Message:   fmt.Sprintf("Booking %s received for room %s", booking.Reference, room.Number),
			CreatedAt: time.Now(),
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	live.BroadcastBookingUpdate(booking)

	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// GetBookingByReference -> public confirmation lookup
func (bc *BookingController) GetBookingByReference(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.Preload("Room").Preload("Room.RoomType").
		Preload("AddOns").Preload("AddOns.AddOn").
		Where("reference = ?", c.Param("reference")).
		First(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetAllBookings -> back office list, optional status filter
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	query := bc.DB.Preload("Room").Preload("AddOns").Preload("AddOns.AddOn")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("check_in_date asc").Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// UpdateBookingStatus -> confirm or cancel, with the transition validated
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !booking.Status.CanTransitionTo(req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("invalid status transition: %s -> %s", booking.Status, req.Status))
		return
	}

	booking.Status = req.Status
	booking.UpdatedAt = time.Now()
	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		title := "Booking update"
		notif := models.Notification{
			Title:     &title,
			Message:   fmt.Sprintf("Booking %s is now %s", booking.Reference, booking.Status),
			CreatedAt: time.Now(),
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastBookingUpdate(booking)

	// A manual confirmation emails the guest the same way a settled
	// deposit does.
	if booking.Status == models.BookingConfirmed {
		go services.SendBookingConfirmationEmail(booking)
	}

	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// CheckIn -> front desk checks the guest in, room becomes occupied
func (bc *BookingController) CheckIn(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !booking.Status.CanTransitionTo(models.BookingCheckedIn) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("booking not in confirmed status"))
		return
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		booking.Status = models.BookingCheckedIn
		booking.CheckedInAt = &now
		booking.UpdatedAt = now
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("status", models.RoomOccupied).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastBookingUpdate(booking)

	utils.RespondJSON(c, http.StatusOK, "Guest checked in", booking)
}

// CheckOut -> front desk checks the guest out, room is freed and
// flagged for housekeeping
func (bc *BookingController) CheckOut(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !booking.Status.CanTransitionTo(models.BookingCheckedOut) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("booking not in checked_in status"))
		return
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		booking.Status = models.BookingCheckedOut
		booking.CheckedOutAt = &now
		booking.UpdatedAt = now
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Updates(map[string]interface{}{
				"status":       models.RoomAvailable,
				"housekeeping": models.RoomDirty,
			}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastBookingUpdate(booking)

	utils.RespondJSON(c, http.StatusOK, "Guest checked out", booking)
}

// GetFrontDeskBoard -> today's arrivals and departures plus in-house guests
func (bc *BookingController) GetFrontDeskBoard(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var board struct {
		Arrivals   []models.Booking `json:"arrivals"`
		Departures []models.Booking `json:"departures"`
		InHouse    []models.Booking `json:"in_house"`
	}

	if err := bc.DB.Preload("Room").
		Where("status = ? AND DATE(check_in_date) = ?", models.BookingConfirmed, today).
		Find(&board.Arrivals).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := bc.DB.Preload("Room").
		Where("status = ? AND DATE(check_out_date) = ?", models.BookingCheckedIn, today).
		Find(&board.Departures).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := bc.DB.Preload("Room").
		Where("status = ?", models.BookingCheckedIn).
		Find(&board.InHouse).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Front desk board", board)
}
