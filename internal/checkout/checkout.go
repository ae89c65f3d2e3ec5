// Package checkout prices and places cash-on-delivery orders.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imrishuroy/go-cod-storefront/internal/catalog"
	"github.com/imrishuroy/go-cod-storefront/internal/events"
	"github.com/imrishuroy/go-cod-storefront/internal/guard"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/imrishuroy/go-cod-storefront/internal/pricing"
	"github.com/imrishuroy/go-cod-storefront/internal/shipping"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
	"github.com/rs/zerolog"
)

var (
	// ErrDuplicateOrder is returned when the caller already ordered the
	// product within the duplicate window.
	ErrDuplicateOrder  = errors.New("duplicate order")
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError names the first customer field that failed.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// Products looks up a product by id.
type Products interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

// Rates looks up the shipping rate of a wilaya.
type Rates interface {
	Get(ctx context.Context, wilaya string) (shipping.Rate, error)
}

// Orders persists new orders.
type Orders interface {
	Create(ctx context.Context, o orders.Order) (orders.Order, error)
}

// Notifier is told about every placed order, after it is stored.
type Notifier interface {
	Broadcast(v interface{})
}

// Service wires the stores together. Publisher and Notifier are optional.
type Service struct {
	Products  Products
	Rates     Rates
	Orders    Orders
	Guard     guard.Guard
	Publisher events.Publisher
	Notifier  Notifier
	Log       zerolog.Logger

	newID func() string
}

// Order is a submission after request parsing.
type Order struct {
	ProductID    string
	Quantity     int
	CustomerName string
	Phone        string
	Wilaya       string
	Commune      string
	Address      string
	HomeDelivery bool
	Size         string
	Color        string
	IP           string
}

// FromRequest copies a submit payload, trimming surrounding blanks.
func FromRequest(req validation.SubmitOrderRequest, ip string) Order {
	return Order{
		ProductID:    strings.TrimSpace(req.ProductID),
		Quantity:     req.Quantity,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		Wilaya:       strings.TrimSpace(req.Wilaya),
		Commune:      strings.TrimSpace(req.Commune),
		Address:      strings.TrimSpace(req.Address),
		HomeDelivery: req.HomeDelivery,
		Size:         strings.TrimSpace(req.Size),
		Color:        strings.TrimSpace(req.Color),
		IP:           ip,
	}
}

// Quote prices a product for a wilaya without placing anything.
func (s *Service) Quote(ctx context.Context, productID string, quantity int, wilaya string, home bool) (pricing.Quote, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return pricing.Quote{}, err
	}
	if strings.TrimSpace(wilaya) == "" {
		return pricing.Quote{}, invalid("wilaya", "wilaya is required")
	}
	rate, err := s.rate(ctx, wilaya)
	if err != nil {
		return pricing.Quote{}, err
	}
	q, err := pricing.Compute(p.BasePrice, quantity, rate.BasePrice, home)
	if errors.Is(err, pricing.ErrInvalidQuantity) {
		return pricing.Quote{}, invalid("quantity", "quantity must be at least 1")
	}
	return q, err
}

// Submit validates, prices and stores an order with status pending.
func (s *Service) Submit(ctx context.Context, in Order) (orders.Order, error) {
	p, err := s.product(ctx, in.ProductID)
	if err != nil {
		return orders.Order{}, err
	}
	rate, err := s.validate(ctx, in, p)
	if err != nil {
		return orders.Order{}, err
	}
	q, err := pricing.Compute(p.BasePrice, in.Quantity, rate.BasePrice, in.HomeDelivery)
	if err != nil {
		return orders.Order{}, invalid("quantity", "quantity must be at least 1")
	}

	id := s.id()
	key := guard.Key(in.IP, p.ProductID)
	claimed, err := s.Guard.Claim(ctx, key, id)
	if err != nil {
		return orders.Order{}, fmt.Errorf("claim guard: %w", err)
	}
	if !claimed {
		return orders.Order{}, ErrDuplicateOrder
	}

	o, err := s.Orders.Create(ctx, orders.Order{
		OrderID:      id,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Wilaya:       rate.Wilaya,
		Commune:      in.Commune,
		Address:      in.Address,
		HomeDelivery: in.HomeDelivery,
		ProductID:    p.ProductID,
		ProductName:  p.Name,
		UnitPrice:    p.BasePrice,
		Size:         in.Size,
		Color:        in.Color,
		Quantity:     in.Quantity,
		ShippingCost: q.ShippingCost,
		TotalPrice:   q.Total,
		Status:       orders.StatusPending,
		IPAddress:    in.IP,
	})
	if err != nil {
		if rerr := s.Guard.Release(ctx, key); rerr != nil {
			s.Log.Error().Err(rerr).Str("order_id", id).Msg("release guard after failed insert")
		}
		return orders.Order{}, fmt.Errorf("create order: %w", err)
	}

	if s.Publisher != nil {
		if err := s.Publisher.Publish(ctx, events.NewOrderCreated(o)); err != nil {
			s.Log.Warn().Err(err).Str("order_id", o.OrderID).Msg("publish order event")
		}
	}
	if s.Notifier != nil {
		s.Notifier.Broadcast(o)
	}
	s.Log.Info().Str("order_id", o.OrderID).Str("wilaya", o.Wilaya).Int64("total", o.TotalPrice).Msg("order placed")
	return o, nil
}

// validate checks customer fields in display order and stops at the first
// failure. It returns the wilaya's rate.
func (s *Service) validate(ctx context.Context, in Order, p catalog.Product) (shipping.Rate, error) {
	if in.CustomerName == "" {
		return shipping.Rate{}, invalid("customer_name", "name is required")
	}
	if in.Phone == "" {
		return shipping.Rate{}, invalid("phone", "phone is required")
	}
	if !validation.IsPhone(in.Phone) {
		return shipping.Rate{}, invalid("phone", "phone must be 10 digits starting with 05, 06 or 07")
	}
	if in.Wilaya == "" {
		return shipping.Rate{}, invalid("wilaya", "wilaya is required")
	}
	rate, err := s.rate(ctx, in.Wilaya)
	if err != nil {
		return shipping.Rate{}, err
	}
	if in.HomeDelivery {
		if in.Commune == "" {
			return shipping.Rate{}, invalid("commune", "commune is required for home delivery")
		}
		if !rate.HasCommune(in.Commune) {
			return shipping.Rate{}, invalid("commune", "commune is not served in this wilaya")
		}
	}
	if len(p.Sizes) > 0 {
		if in.Size == "" {
			return shipping.Rate{}, invalid("size", "size is required")
		}
		if !p.HasSize(in.Size) {
			return shipping.Rate{}, invalid("size", "unknown size")
		}
	}
	if len(p.Colors) > 0 {
		if in.Color == "" {
			return shipping.Rate{}, invalid("color", "color is required")
		}
		if !p.HasColor(in.Color) {
			return shipping.Rate{}, invalid("color", "unknown color")
		}
	}
	if in.Quantity < 1 {
		return shipping.Rate{}, invalid("quantity", "quantity must be at least 1")
	}
	return rate, nil
}

func (s *Service) product(ctx context.Context, id string) (catalog.Product, error) {
	p, err := s.Products.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Product{}, ErrProductNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *Service) rate(ctx context.Context, wilaya string) (shipping.Rate, error) {
	r, err := s.Rates.Get(ctx, strings.TrimSpace(wilaya))
	if errors.Is(err, shipping.ErrNotFound) {
		return shipping.Rate{}, invalid("wilaya", "no shipping rate for this wilaya")
	}
	if err != nil {
		return shipping.Rate{}, fmt.Errorf("get shipping rate: %w", err)
	}
	return r, nil
}

func (s *Service) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}
