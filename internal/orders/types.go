package orders

import "time"

// Order statuses. Any status may move to any other.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusReturned   = "returned"
)

// Statuses lists every status in display order.
var Statuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order represents the item stored in the Orders DynamoDB table. Product name
// and unit price are copied from the product when the order is placed.
type Order struct {
	OrderID      string    `dynamodbav:"order_id" json:"id"` // PK
	CustomerName string    `dynamodbav:"customer_name" json:"customer_name"`
	Phone        string    `dynamodbav:"phone" json:"phone"`
	Wilaya       string    `dynamodbav:"wilaya" json:"wilaya"`
	Commune      string    `dynamodbav:"commune,omitempty" json:"commune,omitempty"`
	Address      string    `dynamodbav:"address,omitempty" json:"address,omitempty"`
	HomeDelivery bool      `dynamodbav:"home_delivery" json:"home_delivery"`
	ProductID    string    `dynamodbav:"product_id" json:"product_id"`
	ProductName  string    `dynamodbav:"product_name" json:"product_name"`
	UnitPrice    int64     `dynamodbav:"unit_price" json:"unit_price"`
	Size         string    `dynamodbav:"size,omitempty" json:"size,omitempty"`
	Color        string    `dynamodbav:"color,omitempty" json:"color,omitempty"`
	Quantity     int       `dynamodbav:"quantity" json:"quantity"`
	ShippingCost int64     `dynamodbav:"shipping_cost" json:"shipping_cost"`
	TotalPrice   int64     `dynamodbav:"total_price" json:"total_price"`
	Status       string    `dynamodbav:"status" json:"status"`
	IPAddress    string    `dynamodbav:"ip_address,omitempty" json:"ip_address,omitempty"`
	CreatedAt    time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updated_at"`
}
