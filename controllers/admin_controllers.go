package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> headline numbers for the admin dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists || roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders   int64   `json:"total_orders"`
		TodayOrders   int64   `json:"today_orders"`
		TotalRevenue  float64 `json:"total_revenue"`
		TodayRevenue  float64 `json:"today_revenue"`
		TotalBookings int64   `json:"total_bookings"`
		InHouseGuests int64   `json:"in_house_guests"`
		OrderStats    struct {
			Pending        int64 `json:"pending"`
			Confirmed      int64 `json:"confirmed"`
			Preparing      int64 `json:"preparing"`
			Ready          int64 `json:"ready"`
			OutForDelivery int64 `json:"out_for_delivery"`
			Delivered      int64 `json:"delivered"`
			Cancelled      int64 `json:"cancelled"`
		} `json:"order_stats"`
		RoomStats struct {
			Available   int64 `json:"available"`
			Occupied    int64 `json:"occupied"`
			Maintenance int64 `json:"maintenance"`
			Dirty       int64 `json:"dirty"`
		} `json:"room_stats"`
		LowStockCount int64 `json:"low_stock_count"`
		OpenDraftPOs  int64 `json:"open_draft_pos"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderDelivered).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("status = ? AND DATE(created_at) = ?", models.OrderDelivered, today).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TodayRevenue)

	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCheckedIn).Count(&stats.InHouseGuests)

	statusCounts := map[models.OrderStatus]*int64{
		models.OrderPending:        &stats.OrderStats.Pending,
		models.OrderConfirmed:      &stats.OrderStats.Confirmed,
		models.OrderPreparing:      &stats.OrderStats.Preparing,
		models.OrderReady:          &stats.OrderStats.Ready,
		models.OrderOutForDelivery: &stats.OrderStats.OutForDelivery,
		models.OrderDelivered:      &stats.OrderStats.Delivered,
		models.OrderCancelled:      &stats.OrderStats.Cancelled,
	}
	for status, dest := range statusCounts {
		ac.DB.Model(&models.Order{}).Where("status = ?", status).Count(dest)
	}

	ac.DB.Model(&models.Room{}).Where("status = ?", models.RoomAvailable).Count(&stats.RoomStats.Available)
	ac.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied).Count(&stats.RoomStats.Occupied)
	ac.DB.Model(&models.Room{}).Where("status = ?", models.RoomMaintenance).Count(&stats.RoomStats.Maintenance)
	ac.DB.Model(&models.Room{}).Where("housekeeping = ?", models.RoomDirty).Count(&stats.RoomStats.Dirty)

	var items []models.InventoryItem
	ac.DB.Find(&items)
	stats.LowStockCount = int64(len(services.LowStock(items)))

	ac.DB.Model(&models.PurchaseOrder{}).
		Where("status = ?", models.PurchaseOrderDraft).Count(&stats.OpenDraftPOs)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetRevenueReport -> delivered order revenue grouped per day
func (ac *AdminController) GetRevenueReport(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("from and to query params are required (YYYY-MM-DD)"))
		return
	}

	var rows []struct {
		Day     string  `json:"day"`
		Orders  int64   `json:"orders"`
		Revenue float64 `json:"revenue"`
	}
	if err := ac.DB.Model(&models.Order{}).
		Select("DATE(created_at) as day, COUNT(*) as orders, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status = ? AND DATE(created_at) BETWEEN ? AND ?", models.OrderDelivered, from, to).
		Group("DATE(created_at)").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var bookingRevenue float64
	ac.DB.Model(&models.Booking{}).
		Where("status IN ? AND DATE(created_at) BETWEEN ? AND ?",
			[]models.BookingStatus{models.BookingConfirmed, models.BookingCheckedIn, models.BookingCheckedOut},
			from, to).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&bookingRevenue)

	utils.RespondJSON(c, http.StatusOK, "Revenue report", gin.H{
		"orders_by_day":     rows,
		"booking_revenue":   bookingRevenue,
		"formatted_booking": utils.FormatCurrencyINR(bookingRevenue),
	})
}

// GetPurchaseSpendReport -> received purchase order spend per supplier
func (ac *AdminController) GetPurchaseSpendReport(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var rows []struct {
		SupplierID   *uint   `json:"supplier_id"`
		SupplierName string  `json:"supplier_name"`
		Orders       int64   `json:"orders"`
		Spend        float64 `json:"spend"`
	}
	if err := ac.DB.Raw(`
		SELECT po.supplier_id as supplier_id,
		       COALESCE(s.name, 'Unassigned') as supplier_name,
		       COUNT(po.id) as orders,
		       COALESCE(SUM(po.total_amount), 0) as spend
		FROM purchase_orders po
		LEFT JOIN suppliers s ON po.supplier_id = s.id
		WHERE po.status = ?
		GROUP BY po.supplier_id, s.name
		ORDER BY spend DESC
	`, models.PurchaseOrderReceived).Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Purchase spend report", rows)
}
