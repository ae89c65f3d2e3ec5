package catalog

import "time"

// ProductType groups products in the storefront menu.
type ProductType struct {
	TypeID       string `dynamodbav:"type_id" json:"id"` // PK
	Name         string `dynamodbav:"name" json:"name"`
	Image        string `dynamodbav:"image,omitempty" json:"image,omitempty"`
	ProductCount int    `dynamodbav:"-" json:"product_count"`
}

// Option is a size or color choice. PriceModifier is stored for display only
// and is not added to the order total.
type Option struct {
	Name          string `dynamodbav:"name" json:"name"`
	PriceModifier int64  `dynamodbav:"price_modifier" json:"price_modifier"`
}

// Offer is a bulk price shown for a quantity.
type Offer struct {
	Quantity int   `dynamodbav:"quantity" json:"quantity"`
	Price    int64 `dynamodbav:"price" json:"price"`
}

// Product is the item stored in the products table.
type Product struct {
	ProductID      string    `dynamodbav:"product_id" json:"id"` // PK
	TypeID         string    `dynamodbav:"type_id" json:"type_id"`
	Name           string    `dynamodbav:"name" json:"name"`
	Description    string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Details        []string  `dynamodbav:"details,omitempty" json:"details"`
	BasePrice      int64     `dynamodbav:"base_price" json:"base_price"`
	CompareAtPrice *int64    `dynamodbav:"compare_at_price,omitempty" json:"compare_at_price,omitempty"`
	Images         []string  `dynamodbav:"images,omitempty" json:"images"`
	Sizes          []Option  `dynamodbav:"sizes,omitempty" json:"sizes"`
	Colors         []Option  `dynamodbav:"colors,omitempty" json:"colors"`
	Offers         []Offer   `dynamodbav:"offers,omitempty" json:"offers"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// HasSize reports whether name is one of the product's sizes.
func (p Product) HasSize(name string) bool { return hasOption(p.Sizes, name) }

// HasColor reports whether name is one of the product's colors.
func (p Product) HasColor(name string) bool { return hasOption(p.Colors, name) }

func hasOption(opts []Option, name string) bool {
	for _, o := range opts {
		if o.Name == name {
			return true
		}
	}
	return false
}
