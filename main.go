package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/config"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/router"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/services"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		// Environment variables may already be set by the deployment.
		logrus.Warnf(".env file not found: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Periodic low-stock scan that drafts purchase orders automatically
	restockMonitor := services.NewRestockMonitor(db)
	restockMonitor.Start()
	defer restockMonitor.Stop()

	// Expire stale pending booking payments
	paymentService := services.NewBookingPaymentService(db)
	paymentService.StartTimeoutChecker()

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.HousekeepingLog{},
		&models.AddOn{},
		&models.Booking{},
		&models.BookingAddOn{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
		&models.StockTransfer{},
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Offer{},
		&models.GalleryImage{},
		&models.Notification{},
		&models.Payment{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
