package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/analytics"
)

func (a *api) registerAnalyticsRoutes(admin *gin.RouterGroup) {
	admin.GET("/analytics", a.getAnalytics)
}

func (a *api) getAnalytics(c *gin.Context) {
	list, err := a.cfg.Orders.List(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	s, err := analytics.Summarize(list, c.Query("range"), a.now(), a.cfg.Location)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
