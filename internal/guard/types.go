package guard

import "time"

// Record is the shape persisted in the order_guards table.
type Record struct {
	GuardKey  string    `dynamodbav:"guard_key"` // PK
	OrderID   string    `dynamodbav:"order_id,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}
