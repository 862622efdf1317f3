package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
)

// Event types
const (
	EventOrderUpdate   = "order_update"
	EventKitchenUpdate = "kitchen_update"
	EventBookingUpdate = "booking_update"
	EventRoomUpdate    = "room_update"
	EventStockAlert    = "stock_alert"
	EventStaffNotif    = "staff_notification"
	EventPaymentUpdate = "payment_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected staff client (kitchen, front desk, admin)
// and fans events out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate pushes an order change to every client.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastKitchenUpdate pushes an item-level change for the kitchen board.
func BroadcastKitchenUpdate(data interface{}) {
	broadcast(Message{
		Event: EventKitchenUpdate,
		Data:  data,
	})
}

// BroadcastBookingUpdate pushes a booking change to the front desk.
func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingUpdate,
		Data:  booking,
	})
}

// BroadcastRoomUpdate pushes a room status change.
func BroadcastRoomUpdate(room models.Room) {
	broadcast(Message{
		Event: EventRoomUpdate,
		Data:  room,
	})
}

// BroadcastStockAlert pushes the current low-stock candidate list.
func BroadcastStockAlert(items []models.InventoryItem) {
	broadcast(Message{
		Event: EventStockAlert,
		Data:  items,
	})
}

// BroadcastStaffNotification pushes a plain text notice to staff.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// BroadcastPaymentUpdate pushes a payment status change.
func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{
		Event: EventPaymentUpdate,
		Data:  payment,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to %s client: %v", role, err)
			continue
		}
	}
}
