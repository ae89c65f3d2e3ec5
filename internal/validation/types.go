package validation

// SubmitOrderRequest is the payload for POST /orders. Customer fields are
// checked in a fixed order by the checkout service, not by struct tags.
type SubmitOrderRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=1000"`
	CustomerName string `json:"customer_name" validate:"max=120"`
	Phone        string `json:"phone" validate:"max=20"`
	Wilaya       string `json:"wilaya" validate:"max=80"`
	Commune      string `json:"commune" validate:"max=120"`
	Address      string `json:"address" validate:"max=300"`
	HomeDelivery bool   `json:"home_delivery"`
	Size         string `json:"size" validate:"max=40"`
	Color        string `json:"color" validate:"max=40"`
}

// QuoteRequest is the payload for POST /orders/quote.
type QuoteRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=1000"`
	Wilaya       string `json:"wilaya" validate:"required"`
	HomeDelivery bool   `json:"home_delivery"`
}

// UpdateOrderStatusRequest is the payload for PATCH /admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled returned"`
}

// ProductTypeRequest creates or replaces a product type.
type ProductTypeRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Image string `json:"image" validate:"omitempty,url"`
}

// OptionRequest is a size or color choice.
type OptionRequest struct {
	Name          string `json:"name" validate:"required,max=40"`
	PriceModifier int64  `json:"price_modifier"`
}

// OfferRequest is a bulk price for a given quantity.
type OfferRequest struct {
	Quantity int   `json:"quantity" validate:"min=2"`
	Price    int64 `json:"price" validate:"gt=0"`
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	TypeID         string          `json:"type_id" validate:"required"`
	Name           string          `json:"name" validate:"required,max=160"`
	Description    string          `json:"description" validate:"max=5000"`
	Details        []string        `json:"details" validate:"dive,max=500"`
	BasePrice      int64           `json:"base_price" validate:"gt=0"`
	CompareAtPrice *int64          `json:"compare_at_price,omitempty" validate:"omitempty,gt=0"`
	Images         []string        `json:"images" validate:"dive,url"`
	Sizes          []OptionRequest `json:"sizes" validate:"dive"`
	Colors         []OptionRequest `json:"colors" validate:"dive"`
	Offers         []OfferRequest  `json:"offers" validate:"dive"`
}

// ShippingRateRequest creates or replaces the rate of one wilaya.
type ShippingRateRequest struct {
	Wilaya    string   `json:"wilaya" validate:"required,max=80"`
	BasePrice int64    `json:"base_price" validate:"min=0"`
	Communes  []string `json:"communes" validate:"dive,required,max=120"`
}

// Socials holds the storefront's social profile links.
type Socials struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	TikTok    string `json:"tiktok,omitempty" validate:"omitempty,url"`
}

// SettingsRequest replaces the store settings row.
type SettingsRequest struct {
	Name            string   `json:"name" validate:"required,max=120"`
	Logo            string   `json:"logo" validate:"omitempty,url"`
	HeroImages      []string `json:"hero_images" validate:"dive,url"`
	Socials         Socials  `json:"socials"`
	Phone           string   `json:"phone" validate:"omitempty,phone"`
	FacebookPixelID string   `json:"facebook_pixel_id" validate:"omitempty,pixelid"`
}

// ReviewRequest is a customer review of a product.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Name    string `json:"name" validate:"max=80"`
	Comment string `json:"comment" validate:"max=1000"`
}
