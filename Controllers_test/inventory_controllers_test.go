package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/controllers"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

func setupTestDBForInventory() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:inventory_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.InventoryItem{}, &models.StockTransfer{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM stock_transfers")
	db.Exec("DELETE FROM inventory_items")
	return db
}

func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	invCtrl := controllers.NewInventoryController(db)
	router.GET("/inventory", invCtrl.GetAllItems)
	router.POST("/inventory", invCtrl.CreateItem)
	router.POST("/inventory/:item_id/transfer", invCtrl.TransferStock)
	router.GET("/inventory/low-stock", invCtrl.GetLowStock)
	router.GET("/stock-transfers", invCtrl.GetTransfers)
	return router
}

func TestCreateInventoryItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory()
	router := setupInventoryRouter(db)

	payload := map[string]interface{}{
		"name":            "Bath Towels",
		"unit":            "pcs",
		"main_stock":      40,
		"min_stock_level": 10,
		"unit_cost":       12.5,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/inventory", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.InventoryItem
	assert.NoError(t, db.Where("name = ?", "Bath Towels").First(&item).Error)
	assert.Equal(t, 40.0, item.MainStock)
	assert.Equal(t, 0.0, item.KitchenStock)
}

func TestTransferStockBetweenLocations(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory()
	router := setupInventoryRouter(db)

	item := models.InventoryItem{Name: "Cooking Oil", Unit: "l", MainStock: 10, MinStockLevel: 2}
	db.Create(&item)

	payload := map[string]interface{}{
		"from":     models.LocationMain,
		"to":       models.LocationKitchen,
		"quantity": 4,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/inventory/%d/transfer", item.ID), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.InventoryItem
	db.First(&stored, item.ID)
	assert.Equal(t, 6.0, stored.MainStock)
	assert.Equal(t, 4.0, stored.KitchenStock)
	// Total across locations is unchanged by a transfer.
	assert.Equal(t, 10.0, stored.CurrentStock())

	var transfer models.StockTransfer
	assert.NoError(t, db.Where("item_id = ?", item.ID).First(&transfer).Error)
	assert.Equal(t, models.LocationMain, transfer.From)
	assert.Equal(t, models.LocationKitchen, transfer.To)
	assert.Equal(t, 4.0, transfer.Quantity)
}

func TestTransferStockInsufficient(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory()
	router := setupInventoryRouter(db)

	item := models.InventoryItem{Name: "Detergent", Unit: "kg", MainStock: 1, MinStockLevel: 1}
	db.Create(&item)

	payload := map[string]interface{}{
		"from":     models.LocationMain,
		"to":       models.LocationHousekeeping,
		"quantity": 5,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/inventory/%d/transfer", item.ID), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.InventoryItem
	db.First(&stored, item.ID)
	assert.Equal(t, 1.0, stored.MainStock)
	assert.Equal(t, 0.0, stored.HousekeepingStock)
}

func TestTransferStockSameLocation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory()
	router := setupInventoryRouter(db)

	item := models.InventoryItem{Name: "Napkins", Unit: "pcs", MainStock: 20}
	db.Create(&item)

	payload := map[string]interface{}{
		"from":     models.LocationMain,
		"to":       models.LocationMain,
		"quantity": 3,
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/inventory/%d/transfer", item.ID), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLowStockEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory()
	router := setupInventoryRouter(db)

	db.Create(&models.InventoryItem{Name: "Rice", Unit: "kg", MainStock: 50, MinStockLevel: 10})
	db.Create(&models.InventoryItem{Name: "Coffee", Unit: "kg", MainStock: 2, MinStockLevel: 8})
	db.Create(&models.InventoryItem{Name: "Soap", Unit: "pcs", MainStock: 4, HousekeepingStock: 2, MinStockLevel: 6})

	req, _ := http.NewRequest("GET", "/inventory/low-stock", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 2)

	names := map[string]bool{}
	for _, entry := range data {
		names[entry.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(t, names["Coffee"])
	assert.True(t, names["Soap"]) // 4+2 equals the minimum, still low
	assert.False(t, names["Rice"])
}
