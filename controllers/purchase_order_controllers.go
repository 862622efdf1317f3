package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/live"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type PurchaseOrderController struct {
	DB      *gorm.DB
	Restock *services.RestockService
}

func NewPurchaseOrderController(db *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{
		DB:      db,
		Restock: services.NewRestockService(db),
	}
}

// GetAllPurchaseOrders -> optional status filter
func (pc *PurchaseOrderController) GetAllPurchaseOrders(c *gin.Context) {
	query := pc.DB.Preload("Items").Preload("Items.Item").Preload("Supplier")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of purchase orders", orders)
}

// GetPurchaseOrderByID
func (pc *PurchaseOrderController) GetPurchaseOrderByID(c *gin.Context) {
	var po models.PurchaseOrder
	if err := pc.DB.Preload("Items").Preload("Items.Item").Preload("Supplier").
		First(&po, c.Param("po_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Purchase order detail", po)
}

// CreatePurchaseOrder -> manual draft
func (pc *PurchaseOrderController) CreatePurchaseOrder(c *gin.Context) {
	type LineReq struct {
		ItemID   uint    `json:"item_id" binding:"required"`
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
		UnitCost float64 `json:"unit_cost" binding:"required,gt=0"`
	}
	var req struct {
		SupplierID *uint     `json:"supplier_id"`
		Notes      string    `json:"notes"`
		Items      []LineReq `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	po := models.PurchaseOrder{
		SupplierID: req.SupplierID,
		Status:     models.PurchaseOrderDraft,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		var total float64
		for _, line := range req.Items {
			var item models.InventoryItem
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				return fmt.Errorf("inventory item %d not found", line.ItemID)
			}
			row := models.PurchaseOrderItem{
				PurchaseOrderID: po.ID,
				ItemID:          item.ID,
				Quantity:        line.Quantity,
				UnitCost:        line.UnitCost,
				LineTotal:       line.Quantity * line.UnitCost,
				CreatedAt:       time.Now(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			total += row.LineTotal
		}

		po.TotalAmount = total
		return tx.Save(&po).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Purchase order created", po)
}

// UpdatePurchaseOrderStatus -> draft->ordered, or cancellation.
// Receiving goes through ReceivePurchaseOrder so stock is incremented.
func (pc *PurchaseOrderController) UpdatePurchaseOrderStatus(c *gin.Context) {
	var po models.PurchaseOrder
	if err := pc.DB.First(&po, c.Param("po_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status models.PurchaseOrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status == models.PurchaseOrderReceived {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("use the receive endpoint to mark a purchase order received"))
		return
	}

	if !po.Status.CanTransitionTo(req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("invalid status transition: %s -> %s", po.Status, req.Status))
		return
	}

	po.Status = req.Status
	po.UpdatedAt = time.Now()
	if req.Status == models.PurchaseOrderOrdered {
		now := time.Now()
		po.OrderedAt = &now
	}

	if err := pc.DB.Save(&po).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Purchase order updated", po)
}

// ReceivePurchaseOrder -> marks received and restocks every line item
func (pc *PurchaseOrderController) ReceivePurchaseOrder(c *gin.Context) {
	poID, err := strconv.Atoi(c.Param("po_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid purchase order id"))
		return
	}

	po, err := pc.Restock.ReceivePurchaseOrder(uint(poID))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastStaffNotification(fmt.Sprintf("Purchase order #%d received", po.ID))

	utils.RespondJSON(c, http.StatusOK, "Purchase order received", po)
}

// RunRestockCheck -> the low-stock scan. Returns candidates and, when
// create=true, turns the deduplicated remainder into one draft PO.
func (pc *PurchaseOrderController) RunRestockCheck(c *gin.Context) {
	create := c.Query("create") == "true"

	result, err := pc.Restock.RunCheck(create)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if result.Created != nil {
		live.BroadcastStaffNotification(
			fmt.Sprintf("Restock draft PO #%d created", result.Created.ID))
	}

	utils.RespondJSON(c, http.StatusOK, "Restock check completed", result)
}

/*
========================================
 SUPPLIERS
========================================
*/

// GetAllSuppliers
func (pc *PurchaseOrderController) GetAllSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := pc.DB.Order("name asc").Find(&suppliers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of suppliers", suppliers)
}

// CreateSupplier
func (pc *PurchaseOrderController) CreateSupplier(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	supplier := models.Supplier{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := pc.DB.Create(&supplier).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Supplier created", supplier)
}
