package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
)

// LowStock returns the items whose total stock is at or below their
// configured minimum.
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	var candidates []models.InventoryItem
	for _, item := range items {
		if item.IsLowStock() {
			candidates = append(candidates, item)
		}
	}
	return candidates
}

// DedupeCandidates drops candidates already queued on an open draft
// purchase order, so repeated checks never order the same item twice.
func DedupeCandidates(candidates []models.InventoryItem, drafts []models.PurchaseOrder) []models.InventoryItem {
	queued := make(map[uint]bool)
	for _, po := range drafts {
		if po.Status != models.PurchaseOrderDraft {
			continue
		}
		for _, line := range po.Items {
			queued[line.ItemID] = true
		}
	}

	var toOrder []models.InventoryItem
	for _, item := range candidates {
		if !queued[item.ID] {
			toOrder = append(toOrder, item)
		}
	}
	return toOrder
}

// RestockResult reports one restock check run.
type RestockResult struct {
	Candidates []models.InventoryItem `json:"candidates"`
	ToOrder    []models.InventoryItem `json:"to_order"`
	Created    *models.PurchaseOrder  `json:"created,omitempty"`
}

// RestockService runs the low-stock scan and, in automatic mode, turns
// the remainder into a single draft purchase order.
type RestockService struct {
	db *gorm.DB
}

func NewRestockService(db *gorm.DB) *RestockService {
	return &RestockService{db: db}
}

// RunCheck scans inventory, filters against open drafts and, when auto
// is set and anything remains, creates one draft PO covering it. The
// whole scan->dedupe->create sequence runs in a single transaction, so
// two consecutive runs with no intervening draft consumption create at
// most one draft.
func (s *RestockService) RunCheck(auto bool) (*RestockResult, error) {
	result := &RestockResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.InventoryItem
		if err := tx.Find(&items).Error; err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}
		result.Candidates = LowStock(items)
		if len(result.Candidates) == 0 {
			return nil
		}

		var drafts []models.PurchaseOrder
		if err := tx.Preload("Items").
			Where("status = ?", models.PurchaseOrderDraft).
			Find(&drafts).Error; err != nil {
			return fmt.Errorf("loading draft purchase orders: %w", err)
		}
		result.ToOrder = DedupeCandidates(result.Candidates, drafts)

		if !auto || len(result.ToOrder) == 0 {
			return nil
		}

		po := models.PurchaseOrder{
			Status:      models.PurchaseOrderDraft,
			Notes:       "Auto-created by restock check",
			AutoCreated: true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range result.ToOrder {
			// Order up to twice the minimum so the next scan has headroom.
			qty := item.MinStockLevel * 2
			line := models.PurchaseOrderItem{
				PurchaseOrderID: po.ID,
				ItemID:          item.ID,
				Quantity:        qty,
				UnitCost:        item.UnitCost,
				LineTotal:       qty * item.UnitCost,
				CreatedAt:       time.Now(),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			total += line.LineTotal
			po.Items = append(po.Items, line)
		}

		po.TotalAmount = total
		if err := tx.Save(&po).Error; err != nil {
			return err
		}

		title := "Restock draft created"
		notif := models.Notification{
			Title:     &title,
			Message:   fmt.Sprintf("Draft purchase order #%d created for %d low-stock items", po.ID, len(result.ToOrder)),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}

		result.Created = &po
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReceivePurchaseOrder marks an ordered PO as received and increments
// the main-location stock of every line item in the same transaction.
func (s *RestockService) ReceivePurchaseOrder(poID uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&po, poID).Error; err != nil {
			return err
		}

		if po.Status != models.PurchaseOrderOrdered {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, po.Status, models.PurchaseOrderReceived)
		}

		for _, line := range po.Items {
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ?", line.ItemID).
				Update("main_stock", gorm.Expr("main_stock + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		po.Status = models.PurchaseOrderReceived
		po.ReceivedAt = &now
		po.UpdatedAt = now
		return tx.Save(&po).Error
	})
	if err != nil {
		return nil, err
	}

	return &po, nil
}
