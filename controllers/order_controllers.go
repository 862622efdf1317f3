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

type OrderController struct {
	DB   *gorm.DB
	Flow *services.OrderFlowService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:   db,
		Flow: services.NewOrderFlowService(db),
	}
}

// GetAllOrders -> list orders with items, optionally filtered by status
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Items.MenuItem")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> guest places a food order (status='pending')
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ItemReq struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		Variant    string `json:"variant"`
		Notes      string `json:"notes"`
	}

	type ReqBody struct {
		GuestName        string     `json:"guest_name" binding:"required"`
		RoomNumber       string     `json:"room_number"`
		DeliveryLocation string     `json:"delivery_location"`
		BookingReference string     `json:"booking_reference"`
		ScheduledFor     *time.Time `json:"scheduled_for"`
		Items            []ItemReq  `json:"items" binding:"required,min=1"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order := models.Order{
		GuestName:        body.GuestName,
		RoomNumber:       body.RoomNumber,
		DeliveryLocation: body.DeliveryLocation,
		ScheduledFor:     body.ScheduledFor,
		Status:           models.OrderPending,
		TotalAmount:      0,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	// Attach the in-house booking when a reference is supplied.
	if body.BookingReference != "" {
		var booking models.Booking
		if err := oc.DB.Where("reference = ?", body.BookingReference).First(&booking).Error; err == nil {
			order.BookingID = &booking.ID
		}
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range body.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				return fmt.Errorf("menu item %d not found", item.MenuItemID)
			}
			if !menuItem.Available {
				return fmt.Errorf("menu item %s is not available", menuItem.Name)
			}

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
				Variant:    item.Variant,
				Notes:      item.Notes,
				Status:     models.ItemPending,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += float64(item.Quantity) * menuItem.Price
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	live.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.MenuItem").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// AdvanceOrder -> staff moves an order to the requested status. The
// transition is validated server-side; anything but the declared next
// status (or cancel) is rejected.
func (oc *OrderController) AdvanceOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := oc.Flow.Advance(order.ID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastOrderUpdate(*updated)
	live.BroadcastStaffNotification(fmt.Sprintf("Order #%d is now %s", updated.ID, updated.Status))

	utils.RespondJSON(c, http.StatusOK, "Order updated", updated)
}

// CancelOrder -> reachable from any non-terminal status
func (oc *OrderController) CancelOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	updated, err := oc.Flow.Advance(order.ID, models.OrderCancelled)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastOrderUpdate(*updated)

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", updated)
}

/*
========================================
 ITEM-LEVEL KITCHEN BOARD
========================================
*/

// StartCookingItem -> kitchen marks one item "pending" => "in_progress"
func (oc *OrderController) StartCookingItem(c *gin.Context) {
	var item models.OrderItem
	if err := oc.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if item.Status != models.ItemPending {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("item not in pending status"))
		return
	}

	item.Status = models.ItemInProgress
	item.UpdatedAt = time.Now()
	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastKitchenUpdate(item)

	utils.RespondJSON(c, http.StatusOK, "Item in_progress", item)
}

// FinishCookingItem -> kitchen marks one item => "ready".
// When every item of a preparing order is ready, the order advances to
// "ready" through the normal flow.
func (oc *OrderController) FinishCookingItem(c *gin.Context) {
	var item models.OrderItem
	if err := oc.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if item.Status != models.ItemInProgress {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("item not in in_progress status"))
		return
	}

	item.Status = models.ItemReady
	item.UpdatedAt = time.Now()
	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var countNotReady int64
	oc.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND status != ?", item.OrderID, models.ItemReady).
		Count(&countNotReady)

	if countNotReady == 0 {
		var order models.Order
		if err := oc.DB.First(&order, item.OrderID).Error; err == nil && order.Status == models.OrderPreparing {
			if updated, err := oc.Flow.Advance(order.ID, models.OrderReady); err == nil {
				live.BroadcastOrderUpdate(*updated)
				live.BroadcastStaffNotification(fmt.Sprintf("Order #%d is ready for delivery", updated.ID))
			}
		}
	}

	live.BroadcastKitchenUpdate(item)

	utils.RespondJSON(c, http.StatusOK, "Item finished", item)
}

// GetPendingItems -> items waiting to be cooked, oldest first
func (oc *OrderController) GetPendingItems(c *gin.Context) {
	var items []models.OrderItem
	if err := oc.DB.Preload("MenuItem").
		Preload("Order").
		Where("status = ?", models.ItemPending).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pending items", items)
}

// GetKitchenDisplay -> kitchen overview of active orders
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Preload("Items.MenuItem").
		Where("status IN ?", []models.OrderStatus{
			models.OrderConfirmed, models.OrderPreparing, models.OrderReady,
		}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}
