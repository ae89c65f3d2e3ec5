// Package events publishes order lifecycle events to a queue or topic.
package events

import (
	"context"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/orders"
)

// TypeOrderCreated is the event type emitted after a successful submission.
const TypeOrderCreated = "order.created"

// OrderEvent is the message body on the wire, JSON encoded.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Wilaya       string    `json:"wilaya"`
	Quantity     int       `json:"quantity"`
	TotalPrice   int64     `json:"total_price"`
	HomeDelivery bool      `json:"home_delivery"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewOrderCreated builds the event for a freshly inserted order.
func NewOrderCreated(o orders.Order) OrderEvent {
	return OrderEvent{
		Type:         TypeOrderCreated,
		OrderID:      o.OrderID,
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		Wilaya:       o.Wilaya,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		HomeDelivery: o.HomeDelivery,
		CreatedAt:    o.CreatedAt,
	}
}

// Publisher sends order events.
type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
