package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/imrishuroy/go-cod-storefront/internal/auth"
	"github.com/imrishuroy/go-cod-storefront/internal/catalog"
	"github.com/imrishuroy/go-cod-storefront/internal/checkout"
	"github.com/imrishuroy/go-cod-storefront/internal/live"
	"github.com/imrishuroy/go-cod-storefront/internal/media"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/imrishuroy/go-cod-storefront/internal/reviews"
	"github.com/imrishuroy/go-cod-storefront/internal/settings"
	"github.com/imrishuroy/go-cod-storefront/internal/shipping"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
	"github.com/rs/zerolog"
)

// HandlerConfig groups dependencies for the HTTP handlers.
type HandlerConfig struct {
	Orders   *orders.Store
	Catalog  *catalog.Store
	Shipping *shipping.Store
	Settings *settings.Store
	Reviews  *reviews.Store
	Checkout *checkout.Service
	Media    media.Uploader
	Hub      *live.Hub

	JWTSecret    string
	Location     *time.Location
	OrderLimiter *IPRateLimiter // nil disables rate limiting on POST /orders
	Log          zerolog.Logger

	Now func() time.Time
}

type api struct {
	cfg HandlerConfig
	v   *validatorv10.Validate
}

func (a *api) now() time.Time {
	now := time.Now()
	if a.cfg.Now != nil {
		now = a.cfg.Now()
	}
	if a.cfg.Location != nil {
		now = now.In(a.cfg.Location)
	}
	return now
}

// Register mounts the public API under /api/v1 and the admin API under
// /api/v1/admin.
func Register(r *gin.Engine, cfg HandlerConfig) {
	a := &api{cfg: cfg, v: validation.New()}

	pub := r.Group("/api/v1")
	admin := pub.Group("/admin", auth.Middleware(cfg.JWTSecret), auth.RequireAdmin())

	a.registerOrdersRoutes(pub, admin)
	a.registerCatalogRoutes(pub, admin)
	a.registerShippingRoutes(pub, admin)
	a.registerSettingsRoutes(pub, admin)
	a.registerUploadRoutes(admin)
	a.registerAnalyticsRoutes(admin)
}

// writeError maps domain errors to status codes. Anything unknown is logged
// and reported as a 500 without detail.
func (a *api) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": ve.Field, "message": ve.Message})
	case errors.Is(err, checkout.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate_order", "message": "you already ordered this product in the last 24 hours"})
	case errors.Is(err, shipping.ErrExists):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	case errors.Is(err, catalog.ErrUnknownType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "type_id", "message": err.Error()})
	case errors.Is(err, orders.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "date_range", "message": err.Error()})
	case errors.Is(err, orders.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "status", "message": err.Error()})
	case errors.Is(err, media.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": "file", "message": err.Error()})
	case errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, shipping.ErrNotFound),
		errors.Is(err, media.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		a.cfg.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
