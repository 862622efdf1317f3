package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
)

func TestValidateOrderTransition(t *testing.T) {
	tests := []struct {
		name    string
		current models.OrderStatus
		target  models.OrderStatus
		wantErr bool
	}{
		{"pending to confirmed", models.OrderPending, models.OrderConfirmed, false},
		{"confirmed to preparing", models.OrderConfirmed, models.OrderPreparing, false},
		{"preparing to ready", models.OrderPreparing, models.OrderReady, false},
		{"ready to out_for_delivery", models.OrderReady, models.OrderOutForDelivery, false},
		{"out_for_delivery to delivered", models.OrderOutForDelivery, models.OrderDelivered, false},
		{"skip ahead two steps", models.OrderPending, models.OrderPreparing, true},
		{"skip ahead to delivered", models.OrderConfirmed, models.OrderDelivered, true},
		{"backwards", models.OrderPreparing, models.OrderConfirmed, true},
		{"same status", models.OrderConfirmed, models.OrderConfirmed, true},
		{"cancel from pending", models.OrderPending, models.OrderCancelled, false},
		{"cancel from out_for_delivery", models.OrderOutForDelivery, models.OrderCancelled, false},
		{"cancel from delivered", models.OrderDelivered, models.OrderCancelled, true},
		{"cancel from cancelled", models.OrderCancelled, models.OrderCancelled, true},
		{"advance from delivered", models.OrderDelivered, models.OrderPending, true},
		{"advance from cancelled", models.OrderCancelled, models.OrderConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrderTransition(tt.current, tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s -> %s, got nil", tt.current, tt.target)
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error for %s -> %s: %v", tt.current, tt.target, err)
			}
		})
	}
}

func TestNextOrderStatusCoversChain(t *testing.T) {
	chain := []models.OrderStatus{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		next, ok := NextOrderStatus(chain[i])
		if !ok {
			t.Fatalf("expected a successor for %s", chain[i])
		}
		if next != chain[i+1] {
			t.Fatalf("successor of %s = %s, want %s", chain[i], next, chain[i+1])
		}
	}

	if _, ok := NextOrderStatus(models.OrderDelivered); ok {
		t.Fatal("delivered must not have a successor")
	}
	if _, ok := NextOrderStatus(models.OrderCancelled); ok {
		t.Fatal("cancelled must not have a successor")
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	if !IsTerminalOrderStatus(models.OrderDelivered) {
		t.Error("delivered should be terminal")
	}
	if !IsTerminalOrderStatus(models.OrderCancelled) {
		t.Error("cancelled should be terminal")
	}
	if IsTerminalOrderStatus(models.OrderPending) {
		t.Error("pending should not be terminal")
	}
	if IsTerminalOrderStatus(models.OrderOutForDelivery) {
		t.Error("out_for_delivery should not be terminal")
	}
}

func setupFlowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:orderflow?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	return db
}

func TestOrderFlowAdvance(t *testing.T) {
	db := setupFlowTestDB(t)
	flow := NewOrderFlowService(db)

	order := models.Order{GuestName: "Walk-in", Status: models.OrderPending}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	updated, err := flow.Advance(order.ID, models.OrderConfirmed)
	if err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}
	if updated.Status != models.OrderConfirmed {
		t.Fatalf("status = %s, want confirmed", updated.Status)
	}

	// Skipping a step must not touch the stored row.
	if _, err := flow.Advance(order.ID, models.OrderReady); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirmed -> ready should be rejected, got %v", err)
	}
	var stored models.Order
	db.First(&stored, order.ID)
	if stored.Status != models.OrderConfirmed {
		t.Fatalf("rejected transition leaked: status = %s", stored.Status)
	}

	// Each advance writes a notification row.
	var notifCount int64
	db.Model(&models.Notification{}).Count(&notifCount)
	if notifCount != 1 {
		t.Fatalf("notification count = %d, want 1", notifCount)
	}
}

func TestOrderFlowAdvanceToDeliveredSetsTimestamp(t *testing.T) {
	db := setupFlowTestDB(t)
	flow := NewOrderFlowService(db)

	order := models.Order{GuestName: "Suite 12", Status: models.OrderOutForDelivery}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	updated, err := flow.Advance(order.ID, models.OrderDelivered)
	if err != nil {
		t.Fatalf("out_for_delivery -> delivered: %v", err)
	}
	if updated.DeliveredAt == nil {
		t.Fatal("delivered_at should be set when the order is delivered")
	}

	// Terminal state, nothing moves it again.
	if _, err := flow.Advance(order.ID, models.OrderCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel after delivery should be rejected, got %v", err)
	}
}

func TestOrderFlowCancelFromAnyActiveStatus(t *testing.T) {
	db := setupFlowTestDB(t)
	flow := NewOrderFlowService(db)

	for _, status := range []models.OrderStatus{
		models.OrderPending,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderOutForDelivery,
	} {
		order := models.Order{GuestName: "Guest", Status: status}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
		updated, err := flow.Advance(order.ID, models.OrderCancelled)
		if err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if updated.Status != models.OrderCancelled {
			t.Fatalf("status = %s, want cancelled", updated.Status)
		}
	}
}
