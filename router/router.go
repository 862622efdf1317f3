package router

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/controllers"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/middlewares"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Uploaded gallery images are served straight from disk.
	workDir, _ := os.Getwd()
	r.Static("/uploads", filepath.Join(workDir, "public", "uploads"))

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global per-IP limiter. Must be registered before any route so
	// gin bakes it into every handler chain.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	roomCtrl := controllers.NewRoomController(db)
	bookingCtrl := controllers.NewBookingController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	poCtrl := controllers.NewPurchaseOrderController(db)
	offerCtrl := controllers.NewOfferController(db)
	galleryCtrl := controllers.NewGalleryController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)
	emailCtrl := controllers.NewEmailController()
	paymentCtrl := controllers.NewPaymentController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- GUEST (no auth) --
	r.GET("/room-types", roomCtrl.GetAllRoomTypes)
	r.GET("/offers", offerCtrl.GetActiveOffers)
	r.GET("/gallery", galleryCtrl.GetAllImages)
	r.GET("/categories", menuCtrl.GetAllCategories)
	r.GET("/menu", menuCtrl.GetAllMenuItems)

	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.GET("/bookings/:reference", bookingCtrl.GetBookingByReference)
	r.POST("/bookings/pay", paymentCtrl.CreateBookingPayment)
	r.POST("/payments/callback", paymentCtrl.HandlePaymentCallback)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// Email relay used by the admin frontend
	r.POST("/api/email/send-reply", emailCtrl.SendReply)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", userCtrl.GetAllUsers)

	// ROOMS & FRONT DESK (frontdesk/admin)
	frontdesk := auth.Group("/")
	frontdesk.Use(middlewares.RequireRole(models.RoleFrontDesk, models.RoleStaff))
	{
		frontdesk.GET("/rooms", roomCtrl.GetAllRooms)
		frontdesk.PATCH("/rooms/:room_id", roomCtrl.UpdateRoomStatus)
		frontdesk.PATCH("/rooms/:room_id/clean", roomCtrl.MarkRoomClean)
		frontdesk.GET("/housekeeping-logs", roomCtrl.GetHousekeepingLogs)

		frontdesk.GET("/bookings", bookingCtrl.GetAllBookings)
		frontdesk.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBookingStatus)
		frontdesk.POST("/bookings/:booking_id/check-in", bookingCtrl.CheckIn)
		frontdesk.POST("/bookings/:booking_id/check-out", bookingCtrl.CheckOut)
		frontdesk.GET("/frontdesk/board", bookingCtrl.GetFrontDeskBoard)
		frontdesk.GET("/bookings/:booking_id/payments", paymentCtrl.GetPaymentsByBooking)
	}

	// ROOM TYPE MANAGEMENT (admin only)
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		adminOnly.POST("/room-types", roomCtrl.CreateRoomType)
		adminOnly.POST("/rooms", roomCtrl.CreateRoom)
	}

	// MENU (staff/admin)
	auth.POST("/categories", menuCtrl.CreateCategory)
	auth.DELETE("/categories/:cat_id", menuCtrl.DeleteCategory)
	auth.GET("/menu", menuCtrl.GetAllMenuItems)
	auth.POST("/menu", menuCtrl.CreateMenuItem)
	auth.PATCH("/menu/:item_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.AdvanceOrder)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

	// KITCHEN (kitchen/admin)
	kitchen := auth.Group("/kitchen")
	kitchen.Use(middlewares.RequireRole(models.RoleKitchen))
	{
		kitchen.GET("/pending-items", orderCtrl.GetPendingItems)
		kitchen.GET("/display", orderCtrl.GetKitchenDisplay)
		kitchen.POST("/items/:item_id/start", orderCtrl.StartCookingItem)
		kitchen.POST("/items/:item_id/finish", orderCtrl.FinishCookingItem)
	}

	// INVENTORY (staff/admin)
	auth.GET("/inventory", inventoryCtrl.GetAllItems)
	auth.POST("/inventory", inventoryCtrl.CreateItem)
	auth.PATCH("/inventory/:item_id", inventoryCtrl.UpdateItem)
	auth.DELETE("/inventory/:item_id", inventoryCtrl.DeleteItem)
	auth.POST("/inventory/:item_id/transfer", inventoryCtrl.TransferStock)
	auth.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
	auth.GET("/stock-transfers", inventoryCtrl.GetTransfers)

	// PURCHASE ORDERS (staff/admin)
	auth.GET("/purchase-orders", poCtrl.GetAllPurchaseOrders)
	auth.POST("/purchase-orders", poCtrl.CreatePurchaseOrder)
	auth.GET("/purchase-orders/:po_id", poCtrl.GetPurchaseOrderByID)
	auth.PATCH("/purchase-orders/:po_id/status", poCtrl.UpdatePurchaseOrderStatus)
	auth.POST("/purchase-orders/:po_id/receive", poCtrl.ReceivePurchaseOrder)
	auth.POST("/purchase-orders/restock-check", poCtrl.RunRestockCheck)
	auth.GET("/suppliers", poCtrl.GetAllSuppliers)
	auth.POST("/suppliers", poCtrl.CreateSupplier)

	// OFFERS & GALLERY (staff/admin)
	auth.GET("/offers", offerCtrl.GetAllOffers)
	auth.POST("/offers", offerCtrl.CreateOffer)
	auth.PATCH("/offers/:offer_id", offerCtrl.UpdateOffer)
	auth.DELETE("/offers/:offer_id", offerCtrl.DeleteOffer)
	auth.POST("/gallery", galleryCtrl.UploadImage)
	auth.DELETE("/gallery/:image_id", galleryCtrl.DeleteImage)

	// NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// ACCOUNTING (admin)
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/reports/revenue", adminCtrl.GetRevenueReport)
	auth.GET("/reports/purchase-spend", adminCtrl.GetPurchaseSpendReport)

	// WebSocket endpoint for live staff updates
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.LiveHandler)
	}

	return r
}
