package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllItems
func (ic *InventoryController) GetAllItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Order("name asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory items", items)
}

// CreateItem
func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		Unit          string  `json:"unit" binding:"required"`
		MainStock     float64 `json:"main_stock"`
		MinStockLevel float64 `json:"min_stock_level"`
		UnitCost      float64 `json:"unit_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.InventoryItem{
		Name:          req.Name,
		Unit:          req.Unit,
		MainStock:     req.MainStock,
		MinStockLevel: req.MinStockLevel,
		UnitCost:      req.UnitCost,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// UpdateItem -> partial update
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Unit          *string  `json:"unit"`
		MinStockLevel *float64 `json:"min_stock_level"`
		UnitCost      *float64 `json:"unit_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStockLevel != nil {
		item.MinStockLevel = *req.MinStockLevel
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}
	item.UpdatedAt = time.Now()

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// DeleteItem
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	if err := ic.DB.Delete(&models.InventoryItem{}, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", nil)
}

// TransferStock -> move quantity between locations, both sides in one tx
func (ic *InventoryController) TransferStock(c *gin.Context) {
	var req struct {
		From     string  `json:"from" binding:"required"`
		To       string  `json:"to" binding:"required"`
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fromCol, ok := locationColumn(req.From)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown source location"))
		return
	}
	toCol, ok := locationColumn(req.To)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown destination location"))
		return
	}
	if fromCol == toCol {
		utils.RespondError(c, http.StatusBadRequest, errors.New("source and destination are the same"))
		return
	}

	var userID *uint
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			userID = &id
		}
	}

	var item models.InventoryItem
	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, c.Param("item_id")).Error; err != nil {
			return err
		}

		if stockAt(&item, req.From) < req.Quantity {
			return fmt.Errorf("insufficient stock at %s", req.From)
		}

		if err := tx.Model(&item).Updates(map[string]interface{}{
			fromCol: gorm.Expr(fromCol+" - ?", req.Quantity),
			toCol:   gorm.Expr(toCol+" + ?", req.Quantity),
		}).Error; err != nil {
			return err
		}

		transfer := models.StockTransfer{
			ItemID:    item.ID,
			From:      req.From,
			To:        req.To,
			Quantity:  req.Quantity,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		return tx.Create(&transfer).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ic.DB.First(&item, item.ID)
	utils.RespondJSON(c, http.StatusOK, "Stock transferred", item)
}

// GetLowStock -> items at or below their minimum
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Low stock items", services.LowStock(items))
}

// GetTransfers -> transfer history, newest first
func (ic *InventoryController) GetTransfers(c *gin.Context) {
	var transfers []models.StockTransfer
	query := ic.DB.Preload("Item")
	if itemID := c.Query("item_id"); itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}
	if err := query.Order("created_at desc").Find(&transfers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock transfers", transfers)
}

func locationColumn(location string) (string, bool) {
	switch location {
	case models.LocationMain:
		return "main_stock", true
	case models.LocationKitchen:
		return "kitchen_stock", true
	case models.LocationHousekeeping:
		return "housekeeping_stock", true
	}
	return "", false
}

func stockAt(item *models.InventoryItem, location string) float64 {
	switch location {
	case models.LocationMain:
		return item.MainStock
	case models.LocationKitchen:
		return item.KitchenStock
	case models.LocationHousekeeping:
		return item.HousekeepingStock
	}
	return 0
}
