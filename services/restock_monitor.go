package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/live"
)

// RestockMonitor runs the automatic restock check on a fixed interval
// and pushes stock alerts over the websocket hub.
type RestockMonitor struct {
	Service  *RestockService
	StopChan chan struct{}
	Interval time.Duration
}

func NewRestockMonitor(db *gorm.DB) *RestockMonitor {
	interval := 10 * time.Minute
	if v := os.Getenv("RESTOCK_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = time.Duration(n) * time.Minute
		}
	}
	return &RestockMonitor{
		Service:  NewRestockService(db),
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (rm *RestockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.check()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *RestockMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *RestockMonitor) check() {
	result, err := rm.Service.RunCheck(true)
	if err != nil {
		log.Printf("Restock check failed: %v", err)
		return
	}

	if len(result.Candidates) > 0 {
		live.BroadcastStockAlert(result.Candidates)
	}
	if result.Created != nil {
		log.Printf("Restock check created draft PO #%d (%d items)",
			result.Created.ID, len(result.Created.Items))
		live.BroadcastStaffNotification("New restock draft purchase order created")
	}
}
