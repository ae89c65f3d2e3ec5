package shipping

import (
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/pricing"
)

// Rate is the delivery price of one wilaya. HomePrice is not stored; it is
// derived from BasePrice on every read.
type Rate struct {
	Wilaya    string    `dynamodbav:"wilaya" json:"wilaya"` // PK
	BasePrice int64     `dynamodbav:"base_price" json:"base_price"`
	HomePrice int64     `dynamodbav:"-" json:"home_price"`
	Communes  []string  `dynamodbav:"communes,omitempty" json:"communes"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// HasCommune reports whether c is listed. A rate without communes accepts any.
func (r Rate) HasCommune(c string) bool {
	if len(r.Communes) == 0 {
		return true
	}
	for _, v := range r.Communes {
		if v == c {
			return true
		}
	}
	return false
}

func (r *Rate) derive() {
	r.HomePrice = pricing.HomePrice(r.BasePrice)
	if r.Communes == nil {
		r.Communes = []string{}
	}
}
