package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
)

// ErrInvalidTransition is returned when a status change skips ahead,
// moves backwards, or leaves a terminal state.
var ErrInvalidTransition = errors.New("invalid status transition")

// successor maps each order status to the only status it may advance
// to. Delivered has no successor; cancelled is handled separately.
var successor = map[models.OrderStatus]models.OrderStatus{
	models.OrderPending:        models.OrderConfirmed,
	models.OrderConfirmed:      models.OrderPreparing,
	models.OrderPreparing:      models.OrderReady,
	models.OrderReady:          models.OrderOutForDelivery,
	models.OrderOutForDelivery: models.OrderDelivered,
}

// IsTerminalOrderStatus reports whether no further transition is allowed.
func IsTerminalOrderStatus(s models.OrderStatus) bool {
	return s == models.OrderDelivered || s == models.OrderCancelled
}

// NextOrderStatus returns the declared successor of a status.
func NextOrderStatus(s models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := successor[s]
	return next, ok
}

// ValidateOrderTransition checks that target is the declared successor
// of current, or cancelled from a non-terminal state.
func ValidateOrderTransition(current, target models.OrderStatus) error {
	if target == models.OrderCancelled {
		if IsTerminalOrderStatus(current) {
			return fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidTransition, current)
		}
		return nil
	}
	next, ok := successor[current]
	if !ok || next != target {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	return nil
}

// OrderFlowService advances orders through their lifecycle with the
// transition rules enforced server-side.
type OrderFlowService struct {
	db *gorm.DB
}

func NewOrderFlowService(db *gorm.DB) *OrderFlowService {
	return &OrderFlowService{db: db}
}

// Advance moves an order to target after validating the transition.
// Delivered captures the actual delivery time.
func (s *OrderFlowService) Advance(orderID uint, target models.OrderStatus) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			return err
		}

		if err := ValidateOrderTransition(order.Status, target); err != nil {
			return err
		}

		order.Status = target
		order.UpdatedAt = time.Now()
		if target == models.OrderDelivered {
			now := time.Now()
			order.DeliveredAt = &now
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		title := "Order update"
		notif := models.Notification{
			Title:     &title,
			Message:   fmt.Sprintf("Order #%d is now %s", order.ID, order.Status),
			CreatedAt: time.Now(),
		}
		return tx.Create(&notif).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
