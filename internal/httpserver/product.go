package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/service"
	"github.com/Skotchmaster/showcase/internal/transport"
	"github.com/Skotchmaster/showcase/internal/util"
)

type CatalogHTTP struct {
	Svc       *service.CatalogService
	Analytics *service.AnalyticsService
}

// GetProducts is the storefront grid: q matches name or code, category and subcategory match exactly.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := domain.ProductFilter{
		Query:       c.QueryParam("q"),
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
	}

	total, items, err := h.Svc.SearchProducts(ctx, filter, offset, limit)
	if err != nil {
		return fail(l, "get_products_error", err, "cannot load products")
	}

	l.Debug("get_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": transport.NewProductResponses(items),
		"meta": util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c, l, "get_product_failed")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err, "cannot get product")
	}
	return c.JSON(http.StatusOK, transport.NewProductResponse(*product))
}

// Buy records the click and sends the visitor to the affiliate link. Tracking never blocks the redirect.
func (h *CatalogHTTP) Buy(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.buy")

	id, err := parseID(c, l, "product_buy_failed")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "product_buy_failed", err, "cannot get product")
	}

	h.Analytics.TrackClick(ctx, product.ID, product.Name)

	l.Info("product_buy_redirect", "product_id", product.ID)
	return c.Redirect(http.StatusFound, product.AffiliateURL)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return fail(l, "list_products_error", err, "cannot load products")
	}
	return c.JSON(http.StatusOK, transport.NewProductResponses(items))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := bind(c, l, "product_create_error", &req); err != nil {
		return err
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "product_create_error", err, "cannot add product to db")
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, transport.NewProductResponse(*created))
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_product")

	id, err := parseID(c, l, "product_patch_error")
	if err != nil {
		return err
	}
	var req transport.PatchProductRequest
	if err := bind(c, l, "product_patch_error", &req); err != nil {
		return err
	}

	updated, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		return fail(l, "product_patch_error", err, "cannot update product")
	}

	l.Info("patch_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.NewProductResponse(*updated))
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := parseID(c, l, "product_delete_error")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete_error", err, "cannot delete product from db")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
