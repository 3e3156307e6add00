package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/showcase/pkg/middleware/auth"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	BannerHandler  *BannerHTTP
	AdminHandler   *AdminHTTP
	GateHandler    *GateHTTP
	AdminAuth      *middleware.AdminSessionMiddleware
	// CSRF guards the cookie-authenticated gate and admin routes; nil disables it.
	CSRF  echo.MiddlewareFunc
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	var guarded []echo.MiddlewareFunc
	if d.CSRF != nil {
		guarded = append(guarded, d.CSRF)
	}

	api := e.Group("/api/v1")

	api.GET("/products", d.CatalogHandler.GetProducts)
	api.GET("/products/:id", d.CatalogHandler.GetProduct)
	api.GET("/products/:id/buy", d.CatalogHandler.Buy)
	api.GET("/categories", d.CatalogHandler.ListCategories)
	api.GET("/banners", d.BannerHandler.ActiveBanners)
	api.GET("/banners/:id/go", d.BannerHandler.Go)
	api.GET("/carousel", d.BannerHandler.Carousel)

	gate := api.Group("/gate", guarded...)
	gate.GET("", d.GateHandler.State)
	gate.POST("/logo", d.GateHandler.LogoClick)
	gate.POST("/open", d.GateHandler.OpenCodeEntry)
	gate.POST("/cancel", d.GateHandler.Cancel)
	gate.POST("/submit", d.GateHandler.Submit)

	api.POST("/admin/close", d.GateHandler.Close, guarded...)

	admin := api.Group("/admin", append(guarded, d.AdminAuth.RequireAdmin)...)

	admin.GET("/products", d.CatalogHandler.ListProducts)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	admin.GET("/categories", d.CatalogHandler.ListCategories)
	admin.GET("/categories/choices", d.CatalogHandler.SubcategoryChoices)
	admin.POST("/categories", d.CatalogHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CatalogHandler.RenameCategory)
	admin.DELETE("/categories/:id", d.CatalogHandler.DeleteCategory)
	admin.POST("/categories/:id/subcategories", d.CatalogHandler.AddSubcategory)
	admin.PATCH("/categories/:id/subcategories/:name", d.CatalogHandler.RenameSubcategory)
	admin.DELETE("/categories/:id/subcategories/:name", d.CatalogHandler.DeleteSubcategory)

	admin.GET("/banners", d.BannerHandler.ListBanners)
	admin.POST("/banners", d.BannerHandler.CreateBanner)
	admin.PATCH("/banners/:id", d.BannerHandler.PatchBanner)
	admin.DELETE("/banners/:id", d.BannerHandler.DeleteBanner)
	admin.POST("/banners/:id/toggle", d.BannerHandler.ToggleBanner)

	admin.GET("/analytics", d.AdminHandler.ListAnalytics)
	admin.GET("/analytics/summary", d.AdminHandler.Summary)
	admin.GET("/settings", d.AdminHandler.GetSettings)
	admin.PUT("/settings", d.AdminHandler.UpdateSettings)
}
