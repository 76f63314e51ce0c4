package ws

import (
	"encoding/json"
	"time"

	"github.com/shashiranjanraj/stockly/pkg/logger"
)

// Event types broadcast on the inventory hub.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryChanged = "category.changed"
	EventSupplierChanged = "supplier.changed"
)

// Event is the JSON envelope pushed to subscribers after a confirmed mutation.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

// InventoryHub is the process-wide hub for inventory change events.
// internal/server starts its Run loop at boot.
var InventoryHub = NewHub()

// Publish broadcasts an event to every connected client. Marshal failures
// are logged and dropped; a dashboard missing one event catches up on the
// next list reload.
func Publish(eventType, id string) {
	data, err := json.Marshal(Event{Type: eventType, ID: id, At: time.Now().UTC()})
	if err != nil {
		logger.Error("ws: marshal event", "type", eventType, "error", err)
		return
	}
	select {
	case InventoryHub.Broadcast <- data:
	default:
		// Buffer full — drop event.
	}
}
