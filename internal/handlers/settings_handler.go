package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/settings"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
)

func (a *api) registerSettingsRoutes(pub, admin *gin.RouterGroup) {
	pub.GET("/settings", a.getSettings)
	admin.PUT("/settings", a.putSettings)
}

func (a *api) getSettings(c *gin.Context) {
	st, err := a.cfg.Settings.Get(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (a *api) putSettings(c *gin.Context) {
	var req validation.SettingsRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	st, err := a.cfg.Settings.Put(c.Request.Context(), settings.Settings{
		Name:       req.Name,
		Logo:       req.Logo,
		HeroImages: req.HeroImages,
		Socials: settings.Socials{
			Facebook:  req.Socials.Facebook,
			Instagram: req.Socials.Instagram,
			TikTok:    req.Socials.TikTok,
		},
		Phone:           req.Phone,
		FacebookPixelID: req.FacebookPixelID,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
