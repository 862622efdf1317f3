package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.BookingPaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: services.NewBookingPaymentService(db),
	}
}

// CreateBookingPayment -> opens a Snap deposit payment for a booking
func (pc *PaymentController) CreateBookingPayment(c *gin.Context) {
	var req struct {
		BookingReference string `json:"booking_reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := pc.DB.Where("reference = ?", req.BookingReference).First(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}

	if booking.Status != models.BookingPending {
		utils.RespondError(c, http.StatusConflict, errors.New("booking is not awaiting payment"))
		return
	}

	// One pending payment per booking at a time.
	var pending int64
	pc.DB.Model(&models.Payment{}).
		Where("booking_id = ? AND status = ?", booking.ID, models.PaymentPending).
		Count(&pending)
	if pending > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("a pending payment already exists for this booking"))
		return
	}

	payment, err := pc.Service.CreateDepositPayment(&booking)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment created", payment)
}

// HandlePaymentCallback -> gateway webhook. Signature is verified
// before any state change.
func (pc *PaymentController) HandlePaymentCallback(c *gin.Context) {
	var req struct {
		OrderID           string `json:"order_id" binding:"required"`
		StatusCode        string `json:"status_code" binding:"required"`
		GrossAmount       string `json:"gross_amount" binding:"required"`
		SignatureKey      string `json:"signature_key" binding:"required"`
		TransactionStatus string `json:"transaction_status" binding:"required"`
		PaymentType       string `json:"payment_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pc.Service.VerifySignature(req.OrderID, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		utils.RespondError(c, http.StatusForbidden, errors.New("invalid signature"))
		return
	}

	payment, err := pc.Service.Settle(req.OrderID, req.TransactionStatus, req.PaymentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("unknown payment reference"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Callback processed", payment)
}

// GetPaymentsByBooking -> payment history of one booking
func (pc *PaymentController) GetPaymentsByBooking(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Where("booking_id = ?", c.Param("booking_id")).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payments", payments)
}
