package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/carousel"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/service"
	"github.com/Skotchmaster/showcase/internal/transport"
	"github.com/Skotchmaster/showcase/internal/util"
)

type BannerHTTP struct {
	Svc *service.BannerService
}

type carouselResponse struct {
	Banners      []models.Banner `json:"banners"`
	Index        int             `json:"index"`
	Current      *models.Banner  `json:"current"`
	ShowControls bool            `json:"showControls"`
	Empty        bool            `json:"empty"`
}

// Carousel returns the active banners with the index reached from ?index= after applying
// ?move=next|prev|goto (goto reads ?to=).
func (h *BannerHTTP) Carousel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner.carousel")

	banners, err := h.Svc.ListBanners(ctx, true)
	if err != nil {
		return fail(l, "carousel_error", err, "cannot load banners")
	}

	car := carousel.New(banners)
	if raw := c.QueryParam("index"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err == nil && i != 0 {
			err = car.Goto(i)
		}
		if err != nil {
			l.Warn("carousel_error", "status", 400, "reason", "bad index", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "index must be a banner position")
		}
	}

	switch c.QueryParam("move") {
	case "":
	case "next":
		car.Next()
	case "prev":
		car.Prev()
	case "goto":
		if err := car.Goto(util.ParseIntDefault(c.QueryParam("to"), -1)); err != nil {
			l.Warn("carousel_error", "status", 400, "reason", "index out of range", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	default:
		l.Warn("carousel_error", "status", 400, "reason", "unknown move")
		return echo.NewHTTPError(http.StatusBadRequest, "move must be next, prev or goto")
	}

	resp := carouselResponse{
		Banners:      car.Banners(),
		Index:        car.Index(),
		ShowControls: car.ShowControls(),
		Empty:        car.Empty(),
	}
	if cur, ok := car.Current(); ok {
		resp.Current = &cur
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BannerHTTP) ActiveBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner.active")

	items, err := h.Svc.ListBanners(ctx, true)
	if err != nil {
		return fail(l, "list_banners_error", err, "cannot load banners")
	}
	return c.JSON(http.StatusOK, items)
}

// Go follows a banner click to its affiliate link. Nothing is recorded.
func (h *BannerHTTP) Go(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "banner.go")

	id, err := parseID(c, l, "banner_go_failed")
	if err != nil {
		return err
	}
	b, err := h.Svc.GetBanner(ctx, id)
	if err != nil {
		return fail(l, "banner_go_failed", err, "cannot get banner")
	}
	if b.AffiliateURL == "" {
		l.Warn("banner_go_failed", "status", 404, "reason", "banner has no link", "banner_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "banner has no link")
	}
	return c.Redirect(http.StatusFound, b.AffiliateURL)
}

func (h *BannerHTTP) ListBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_banners")

	items, err := h.Svc.ListBanners(ctx, false)
	if err != nil {
		return fail(l, "list_banners_error", err, "cannot load banners")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BannerHTTP) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_banner")

	b, err := h.Svc.CreateBanner(ctx)
	if err != nil {
		return fail(l, "banner_create_error", err, "cannot add banner")
	}
	l.Info("banner_create_success", "banner_id", b.ID)
	return c.JSON(http.StatusCreated, b)
}

func (h *BannerHTTP) PatchBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_banner")

	id, err := parseID(c, l, "banner_patch_error")
	if err != nil {
		return err
	}
	var req transport.PatchBannerRequest
	if err := bind(c, l, "banner_patch_error", &req); err != nil {
		return err
	}

	b, err := h.Svc.PatchBanner(ctx, id, req)
	if err != nil {
		return fail(l, "banner_patch_error", err, "cannot update banner")
	}
	l.Info("banner_patch_success", "banner_id", id)
	return c.JSON(http.StatusOK, b)
}

func (h *BannerHTTP) ToggleBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.toggle_banner")

	id, err := parseID(c, l, "banner_toggle_error")
	if err != nil {
		return err
	}
	b, err := h.Svc.ToggleBanner(ctx, id)
	if err != nil {
		return fail(l, "banner_toggle_error", err, "cannot toggle banner")
	}
	l.Info("banner_toggle_success", "banner_id", id, "active", b.IsActive)
	return c.JSON(http.StatusOK, b)
}

func (h *BannerHTTP) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_banner")

	id, err := parseID(c, l, "banner_delete_error")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteBanner(ctx, id); err != nil {
		return fail(l, "banner_delete_error", err, "cannot delete banner")
	}
	l.Info("banner_delete_success", "banner_id", id)
	return c.NoContent(http.StatusNoContent)
}
