package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/router"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main operational flow:
// 0. seed admin, room, menu and inventory, login -> token
// 1. guest books a room, front desk confirms and checks in
// 2. guest places a room-service order against the booking
// 3. kitchen cooks, order advances to delivered step by step
// 4. low-stock scan creates exactly one draft purchase order
// 5. guest checks out, room is flagged for housekeeping
func TestEndToEndIntegration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	bookingID, reference := createBookingTest(t, r)
	confirmAndCheckInTest(t, r, db, token, bookingID)

	orderID := createOrderTest(t, r, db, reference)
	advanceOrderToDeliveredTest(t, r, db, token, orderID)

	restockCheckTest(t, r, db, token)

	checkOutTest(t, r, db, token, bookingID)
}

func TestGlobalRateLimiterGuardsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:ratelimit?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	r := router.SetupRouter(db)

	for i := 0; i < 50; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d got %d, want 200", i+1, w.Code)
		}
	}

	// The 51st request inside the window is throttled.
	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request 51 got %d, want 429", w.Code)
	}
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RoomType{}, &models.Room{}, &models.HousekeepingLog{},
		&models.Booking{}, &models.AddOn{}, &models.BookingAddOn{},
		&models.MenuCategory{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{},
		&models.InventoryItem{}, &models.StockTransfer{},
		&models.Supplier{}, &models.PurchaseOrder{}, &models.PurchaseOrderItem{},
		&models.Offer{}, &models.GalleryImage{},
		&models.Notification{}, &models.Payment{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("integration-pw"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name: "Ops Admin", Email: "admin@sultanpalace.test",
		Password: string(hashed), Role: models.RoleAdmin,
	})

	roomType := models.RoomType{Name: "Garden Suite", BaseRate: 150.0, Capacity: 3}
	db.Create(&roomType)
	db.Create(&models.Room{Number: "101", RoomTypeID: roomType.ID, Floor: 1,
		Status: models.RoomAvailable, Housekeeping: models.RoomClean})

	category := models.MenuCategory{Name: "Room Service"}
	db.Create(&category)
	db.Create(&models.MenuItem{CategoryID: category.ID, Name: "Paneer Tikka", Price: 14.0, Available: true})

	db.Create(&models.InventoryItem{Name: "Bath Towels", Unit: "pcs",
		MainStock: 2, MinStockLevel: 5, UnitCost: 12.0})

	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}
	return data
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, "POST", "/login", "", map[string]interface{}{
		"email":    "admin@sultanpalace.test",
		"password": "integration-pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	token, _ := decodeData(t, w)["token"].(string)
	if token == "" {
		t.Fatal("empty token")
	}
	return token
}

func createBookingTest(t *testing.T, r *gin.Engine) (uint, string) {
	w := doJSON(t, r, "POST", "/bookings", "", map[string]interface{}{
		"guest_name":     "Imran Traveller",
		"guest_email":    "imran@example.com",
		"room_id":        1,
		"check_in_date":  "2026-10-05T14:00:00Z",
		"check_out_date": "2026-10-08T11:00:00Z",
		"guests":         2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	if total := data["total_amount"].(float64); total != 450.0 {
		t.Fatalf("booking total = %v, want 450 for 3 nights", total)
	}
	return uint(data["id"].(float64)), data["reference"].(string)
}

func confirmAndCheckInTest(t *testing.T, r *gin.Engine, db *gorm.DB, token string, bookingID uint) {
	w := doJSON(t, r, "PATCH", fmt.Sprintf("/admin/bookings/%d", bookingID), token,
		map[string]interface{}{"status": models.BookingConfirmed})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm booking failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", fmt.Sprintf("/admin/bookings/%d/check-in", bookingID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-in failed: %d %s", w.Code, w.Body.String())
	}

	var room models.Room
	db.First(&room, 1)
	if room.Status != models.RoomOccupied {
		t.Fatalf("room status = %s, want occupied", room.Status)
	}
}

func createOrderTest(t *testing.T, r *gin.Engine, db *gorm.DB, reference string) uint {
	w := doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"guest_name":        "Imran Traveller",
		"room_number":       "101",
		"booking_reference": reference,
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	orderID := uint(data["id"].(float64))

	var order models.Order
	db.First(&order, orderID)
	if order.BookingID == nil {
		t.Fatal("order not linked to the in-house booking")
	}
	if order.TotalAmount != 28.0 {
		t.Fatalf("order total = %v, want 28", order.TotalAmount)
	}
	return orderID
}

func advanceOrderToDeliveredTest(t *testing.T, r *gin.Engine, db *gorm.DB, token string, orderID uint) {
	advance := func(status models.OrderStatus) *httptest.ResponseRecorder {
		return doJSON(t, r, "PATCH", fmt.Sprintf("/admin/orders/%d/status", orderID), token,
			map[string]interface{}{"status": status})
	}

	// Skipping confirmation is rejected before the kitchen sees anything.
	if w := advance(models.OrderPreparing); w.Code != http.StatusConflict {
		t.Fatalf("skipping a step returned %d, want 409", w.Code)
	}

	for _, status := range []models.OrderStatus{models.OrderConfirmed, models.OrderPreparing} {
		if w := advance(status); w.Code != http.StatusOK {
			t.Fatalf("advance to %s failed: %d %s", status, w.Code, w.Body.String())
		}
	}

	var item models.OrderItem
	if err := db.Where("order_id = ?", orderID).First(&item).Error; err != nil {
		t.Fatalf("load order item: %v", err)
	}

	w := doJSON(t, r, "POST", fmt.Sprintf("/admin/kitchen/items/%d/start", item.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start cooking failed: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, "POST", fmt.Sprintf("/admin/kitchen/items/%d/finish", item.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("finish cooking failed: %d %s", w.Code, w.Body.String())
	}

	// The last ready item pushed the order to ready.
	var order models.Order
	db.First(&order, orderID)
	if order.Status != models.OrderReady {
		t.Fatalf("order status = %s, want ready", order.Status)
	}

	for _, status := range []models.OrderStatus{models.OrderOutForDelivery, models.OrderDelivered} {
		if w := advance(status); w.Code != http.StatusOK {
			t.Fatalf("advance to %s failed: %d %s", status, w.Code, w.Body.String())
		}
	}

	db.First(&order, orderID)
	if order.DeliveredAt == nil {
		t.Fatal("delivered_at not set")
	}

	// Terminal now; nothing moves it, not even a cancel.
	if w := doJSON(t, r, "POST", fmt.Sprintf("/admin/orders/%d/cancel", orderID), token, nil); w.Code != http.StatusConflict {
		t.Fatalf("cancel after delivery returned %d, want 409", w.Code)
	}
}

func restockCheckTest(t *testing.T, r *gin.Engine, db *gorm.DB, token string) {
	w := doJSON(t, r, "POST", "/admin/purchase-orders/restock-check?create=true", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restock check failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	if data["created"] == nil {
		t.Fatal("expected a draft purchase order")
	}

	// A second run against the same stock picture must not duplicate it.
	w = doJSON(t, r, "POST", "/admin/purchase-orders/restock-check?create=true", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second restock check failed: %d %s", w.Code, w.Body.String())
	}

	var draftCount int64
	db.Model(&models.PurchaseOrder{}).Where("status = ?", models.PurchaseOrderDraft).Count(&draftCount)
	if draftCount != 1 {
		t.Fatalf("draft PO count = %d, want 1", draftCount)
	}
}

func checkOutTest(t *testing.T, r *gin.Engine, db *gorm.DB, token string, bookingID uint) {
	w := doJSON(t, r, "POST", fmt.Sprintf("/admin/bookings/%d/check-out", bookingID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-out failed: %d %s", w.Code, w.Body.String())
	}

	var room models.Room
	db.First(&room, 1)
	if room.Status != models.RoomAvailable || room.Housekeeping != models.RoomDirty {
		t.Fatalf("room after check-out: status=%s housekeeping=%s", room.Status, room.Housekeeping)
	}

	var booking models.Booking
	db.First(&booking, bookingID)
	if booking.Status != models.BookingCheckedOut {
		t.Fatalf("booking status = %s, want checked_out", booking.Status)
	}
}
