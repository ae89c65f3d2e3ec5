package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/checkout"
	"github.com/imrishuroy/go-cod-storefront/internal/export"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
)

func (a *api) registerOrdersRoutes(pub, admin *gin.RouterGroup) {
	pub.POST("/orders/quote", a.quoteOrder)
	pub.POST("/orders", a.cfg.OrderLimiter.Middleware(), a.submitOrder)

	admin.GET("/orders", a.listOrders)
	admin.GET("/orders/export", a.exportOrders)
	admin.GET("/orders/live", a.liveOrders)
	admin.GET("/orders/:id", a.getOrder)
	admin.PATCH("/orders/:id/status", a.updateOrderStatus)
	admin.DELETE("/orders/:id", a.deleteOrder)
}

func (a *api) quoteOrder(c *gin.Context) {
	var req validation.QuoteRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	q, err := a.cfg.Checkout.Quote(c.Request.Context(), req.ProductID, req.Quantity, req.Wilaya, req.HomeDelivery)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (a *api) submitOrder(c *gin.Context) {
	var req validation.SubmitOrderRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		// BindAndValidate already wrote a 400
		return
	}

	o, err := a.cfg.Checkout.Submit(c.Request.Context(), checkout.FromRequest(req, c.ClientIP()))
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/admin/orders/%s", o.OrderID))
	c.JSON(http.StatusCreated, gin.H{
		"order_id":      o.OrderID,
		"status":        o.Status,
		"shipping_cost": o.ShippingCost,
		"total_price":   o.TotalPrice,
	})
}

// filteredOrders reads the inbox and applies the query filter.
func (a *api) filteredOrders(c *gin.Context) ([]orders.Order, error) {
	var f orders.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	list, err := a.cfg.Orders.List(ctx)
	if err != nil {
		return nil, err
	}

	var resolve orders.TypeResolver
	if f.ProductType != "" && f.ProductType != orders.All {
		productType, typeName, err := a.cfg.Catalog.TypeIndex(ctx)
		if err != nil {
			return nil, err
		}
		resolve = orders.NewTypeResolver(productType, typeName)
	}
	return orders.Apply(list, f, resolve, a.now())
}

func (a *api) listOrders(c *gin.Context) {
	list, err := a.filteredOrders(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

func (a *api) exportOrders(c *gin.Context) {
	list, err := a.filteredOrders(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.FileName(a.now()))
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteOrders(c.Writer, list, a.cfg.Location); err != nil {
		// headers are already out; only log
		a.cfg.Log.Error().Err(err).Msg("write orders export")
	}
}

func (a *api) liveOrders(c *gin.Context) {
	a.cfg.Hub.Handler(c)
}

func (a *api) getOrder(c *gin.Context) {
	o, err := a.cfg.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *api) updateOrderStatus(c *gin.Context) {
	var req validation.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	o, err := a.cfg.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *api) deleteOrder(c *gin.Context) {
	if err := a.cfg.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
