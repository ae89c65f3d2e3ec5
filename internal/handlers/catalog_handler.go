package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/catalog"
	"github.com/imrishuroy/go-cod-storefront/internal/reviews"
	"github.com/imrishuroy/go-cod-storefront/internal/validation"
)

func (a *api) registerCatalogRoutes(pub, admin *gin.RouterGroup) {
	pub.GET("/product-types", a.listProductTypes)
	pub.GET("/product-types/:id", a.getProductType)
	pub.GET("/products", a.listProducts)
	pub.GET("/products/:id", a.getProduct)
	pub.GET("/products/:id/reviews", a.listReviews)
	pub.POST("/products/:id/reviews", a.createReview)

	admin.POST("/product-types", a.createProductType)
	admin.PUT("/product-types/:id", a.updateProductType)
	admin.DELETE("/product-types/:id", a.deleteProductType)
	admin.POST("/products", a.createProduct)
	admin.PUT("/products/:id", a.updateProduct)
	admin.DELETE("/products/:id", a.deleteProduct)
}

func (a *api) listProductTypes(c *gin.Context) {
	list, err := a.cfg.Catalog.ListTypes(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getProductType(c *gin.Context) {
	t, err := a.cfg.Catalog.GetType(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *api) createProductType(c *gin.Context) {
	var req validation.ProductTypeRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	t, err := a.cfg.Catalog.CreateType(c.Request.Context(), catalog.ProductType{Name: req.Name, Image: req.Image})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (a *api) updateProductType(c *gin.Context) {
	var req validation.ProductTypeRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	t, err := a.cfg.Catalog.UpdateType(c.Request.Context(), c.Param("id"), catalog.ProductType{Name: req.Name, Image: req.Image})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *api) deleteProductType(c *gin.Context) {
	if err := a.cfg.Catalog.DeleteType(c.Request.Context(), c.Param("id")); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) listProducts(c *gin.Context) {
	f := catalog.ProductFilter{TypeID: c.Query("type"), Query: c.Query("q")}
	for param, dst := range map[string]**int64{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "field": param, "message": "must be an integer"})
			return
		}
		*dst = &v
	}

	list, err := a.cfg.Catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getProduct(c *gin.Context) {
	p, err := a.cfg.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) createProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	p, err := a.cfg.Catalog.CreateProduct(c.Request.Context(), productFromRequest(req))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (a *api) updateProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	p, err := a.cfg.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), productFromRequest(req))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) deleteProduct(c *gin.Context) {
	if err := a.cfg.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) listReviews(c *gin.Context) {
	list, err := a.cfg.Reviews.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "summary": reviews.Summarize(list)})
}

func (a *api) createReview(c *gin.Context) {
	var req validation.ReviewRequest
	if err := validation.BindAndValidate(c, &req, a.v); err != nil {
		return
	}
	ctx := c.Request.Context()
	if _, err := a.cfg.Catalog.GetProduct(ctx, c.Param("id")); err != nil {
		a.writeError(c, err)
		return
	}
	r, err := a.cfg.Reviews.Create(ctx, c.Param("id"), reviews.Review{Rating: req.Rating, Name: req.Name, Comment: req.Comment})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func productFromRequest(req validation.ProductRequest) catalog.Product {
	p := catalog.Product{
		TypeID:         req.TypeID,
		Name:           req.Name,
		Description:    req.Description,
		Details:        req.Details,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
	}
	for _, s := range req.Sizes {
		p.Sizes = append(p.Sizes, catalog.Option{Name: s.Name, PriceModifier: s.PriceModifier})
	}
	for _, col := range req.Colors {
		p.Colors = append(p.Colors, catalog.Option{Name: col.Name, PriceModifier: col.PriceModifier})
	}
	for _, o := range req.Offers {
		p.Offers = append(p.Offers, catalog.Offer{Quantity: o.Quantity, Price: o.Price})
	}
	return p
}
