package httpserver

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/transport"
)

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return fail(l, "list_categories_error", err, "cannot load categories")
	}
	return c.JSON(http.StatusOK, items)
}

// SubcategoryChoices feeds the product form's subcategory dropdown for the selected category.
func (h *CatalogHTTP) SubcategoryChoices(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.choices")

	choices, err := h.Svc.SubcategoryChoices(ctx, c.QueryParam("category"))
	if err != nil {
		return fail(l, "subcategory_choices_error", err, "cannot load categories")
	}
	return c.JSON(http.StatusOK, map[string]any{"category": c.QueryParam("category"), "subcategories": choices})
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := bind(c, l, "category_create_error", &req); err != nil {
		return err
	}

	created, err := h.Svc.CreateCategory(ctx, req.Name, req.Subcategories)
	if err != nil {
		return fail(l, "category_create_error", err, "cannot add category")
	}

	l.Info("category_create_success", "category_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) RenameCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.rename")

	id, err := parseID(c, l, "category_rename_error")
	if err != nil {
		return err
	}
	var req transport.RenameCategoryRequest
	if err := bind(c, l, "category_rename_error", &req); err != nil {
		return err
	}

	updated, err := h.Svc.RenameCategory(ctx, id, req.Name)
	if err != nil {
		return fail(l, "category_rename_error", err, "cannot update category")
	}

	l.Info("category_rename_success", "category_id", id)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseID(c, l, "category_delete_blocked")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return fail(l, "category_delete_blocked", err, "cannot delete category")
	}

	l.Info("category_delete_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) AddSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.add")

	id, err := parseID(c, l, "subcategory_add_error")
	if err != nil {
		return err
	}
	var req transport.SubcategoryRequest
	if err := bind(c, l, "subcategory_add_error", &req); err != nil {
		return err
	}

	updated, err := h.Svc.AddSubcategory(ctx, id, req.Name)
	if err != nil {
		return fail(l, "subcategory_add_error", err, "cannot add subcategory")
	}

	l.Info("subcategory_add_success", "category_id", id)
	return c.JSON(http.StatusCreated, updated)
}

func (h *CatalogHTTP) RenameSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.rename")

	id, err := parseID(c, l, "subcategory_rename_error")
	if err != nil {
		return err
	}
	oldName, err := subcategoryParam(c, l, "subcategory_rename_error")
	if err != nil {
		return err
	}
	var req transport.RenameSubcategoryRequest
	if err := bind(c, l, "subcategory_rename_error", &req); err != nil {
		return err
	}

	updated, err := h.Svc.RenameSubcategory(ctx, id, oldName, req.NewName)
	if err != nil {
		return fail(l, "subcategory_rename_error", err, "cannot update subcategory")
	}

	l.Info("subcategory_rename_success", "category_id", id, "from", oldName, "to", req.NewName)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.delete")

	id, err := parseID(c, l, "subcategory_delete_blocked")
	if err != nil {
		return err
	}
	name, err := subcategoryParam(c, l, "subcategory_delete_blocked")
	if err != nil {
		return err
	}

	updated, err := h.Svc.DeleteSubcategory(ctx, id, name)
	if err != nil {
		return fail(l, "subcategory_delete_blocked", err, "cannot delete subcategory")
	}

	l.Info("subcategory_delete_success", "category_id", id, "name", name)
	return c.JSON(http.StatusOK, updated)
}

// subcategoryParam returns the decoded :name segment. Echo routes on the decoded path unless the
// request carries a RawPath (an escaped "/" for example), in which case the segment is still escaped.
func subcategoryParam(c echo.Context, l *slog.Logger, event string) (string, error) {
	name := c.Param("name")
	var err error
	if c.Request().URL.RawPath != "" {
		name, err = url.PathUnescape(name)
	}
	if err != nil || name == "" {
		l.Warn(event, "status", 400, "reason", "bad subcategory name", "error", err)
		return "", echo.NewHTTPError(http.StatusBadRequest, "bad subcategory name")
	}
	return name, nil
}
