package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type OfferController struct {
	DB *gorm.DB
}

func NewOfferController(db *gorm.DB) *OfferController {
	return &OfferController{DB: db}
}

// GetActiveOffers -> public, only offers valid right now
func (oc *OfferController) GetActiveOffers(c *gin.Context) {
	now := time.Now()
	var offers []models.Offer
	if err := oc.DB.
		Where("active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Find(&offers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active offers", offers)
}

// GetAllOffers -> back office
func (oc *OfferController) GetAllOffers(c *gin.Context) {
	var offers []models.Offer
	if err := oc.DB.Order("valid_from desc").Find(&offers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of offers", offers)
}

// CreateOffer
func (oc *OfferController) CreateOffer(c *gin.Context) {
	var req struct {
		Title           string    `json:"title" binding:"required"`
		Description     string    `json:"description"`
		DiscountPercent float64   `json:"discount_percent" binding:"required,gt=0,lte=100"`
		ValidFrom       time.Time `json:"valid_from" binding:"required"`
		ValidUntil      time.Time `json:"valid_until" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	offer := models.Offer{
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		Active:          true,
	}
	if err := oc.DB.Create(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Offer created", offer)
}

// UpdateOffer -> partial update
func (oc *OfferController) UpdateOffer(c *gin.Context) {
	var offer models.Offer
	if err := oc.DB.First(&offer, c.Param("offer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Title           *string    `json:"title"`
		Description     *string    `json:"description"`
		DiscountPercent *float64   `json:"discount_percent"`
		ValidFrom       *time.Time `json:"valid_from"`
		ValidUntil      *time.Time `json:"valid_until"`
		Active          *bool      `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.DiscountPercent != nil {
		offer.DiscountPercent = *req.DiscountPercent
	}
	if req.ValidFrom != nil {
		offer.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		offer.ValidUntil = *req.ValidUntil
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}

	if err := oc.DB.Save(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Offer updated", offer)
}

// DeleteOffer
func (oc *OfferController) DeleteOffer(c *gin.Context) {
	if err := oc.DB.Delete(&models.Offer{}, c.Param("offer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offer deleted", nil)
}
