package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/shipping"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
)

// Every shipping mutation answers with the full, re-read table so the admin
// view never shows a stale row.
func (a *api) registerShippingRoutes(pub, admin *gin.RouterGroup) {
	pub.GET("/shipping-rates", a.listShippingRates)

	admin.GET("/shipping-rates", a.listShippingRates)
	admin.POST("/shipping-rates", a.createShippingRate)
	admin.PUT("/shipping-rates/:wilaya", a.updateShippingRate)
	admin.DELETE("/shipping-rates/:wilaya", a.deleteShippingRate)
}

func (a *api) listShippingRates(c *gin.Context) {
	a.respondRates(c, http.StatusOK)
}

func (a *api) createShippingRate(c *gin.Context) {
	var req validation.ShippingRateRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	err := a.cfg.Shipping.Create(c.Request.Context(), shipping.Rate{Wilaya: req.Wilaya, BasePrice: req.BasePrice, Communes: req.Communes})
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.respondRates(c, http.StatusCreated)
}

func (a *api) updateShippingRate(c *gin.Context) {
	var req validation.ShippingRateRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	err := a.cfg.Shipping.Update(c.Request.Context(), c.Param("wilaya"), shipping.Rate{BasePrice: req.BasePrice, Communes: req.Communes})
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.respondRates(c, http.StatusOK)
}

func (a *api) deleteShippingRate(c *gin.Context) {
	if err := a.cfg.Shipping.Delete(c.Request.Context(), c.Param("wilaya")); err != nil {
		a.writeError(c, err)
		return
	}
	a.respondRates(c, http.StatusOK)
}

func (a *api) respondRates(c *gin.Context, code int) {
	list, err := a.cfg.Shipping.List(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(code, list)
}
