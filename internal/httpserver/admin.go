package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"
	middleware "github.com/Skotchmaster/showcase/pkg/middleware/auth"

	"github.com/Skotchmaster/showcase/internal/service"
	"github.com/Skotchmaster/showcase/internal/transport"
)

type AdminHTTP struct {
	Settings  *service.SettingsService
	Analytics *service.AnalyticsService
}

func (h *AdminHTTP) ListAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.analytics")

	items, err := h.Analytics.ListAnalytics(ctx)
	if err != nil {
		return fail(l, "analytics_error", err, "cannot load analytics")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.analytics_summary")

	sum, err := h.Analytics.Summary(ctx)
	if err != nil {
		return fail(l, "analytics_summary_error", err, "cannot load analytics")
	}
	return c.JSON(http.StatusOK, sum)
}

// GetSettings reports the stored code plus the caller's session, which is informational only.
func (h *AdminHTTP) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_settings")

	settings, err := h.Settings.GetSettings(ctx)
	if err != nil {
		return fail(l, "settings_get_error", err, "cannot load settings")
	}
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.ExpiresAt != nil {
		settings.SessionActive = true
		settings.SessionExpiry = claims.ExpiresAt.UnixMilli()
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *AdminHTTP) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_settings")

	var req transport.UpdateSettingsRequest
	if err := bind(c, l, "settings_update_error", &req); err != nil {
		return err
	}

	settings, err := h.Settings.UpdateSecretCode(ctx, req.SecretCode)
	if err != nil {
		return fail(l, "settings_update_error", err, "cannot update secret code")
	}
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.ExpiresAt != nil {
		settings.SessionActive = true
		settings.SessionExpiry = claims.ExpiresAt.UnixMilli()
	}

	l.Info("settings_update_success")
	return c.JSON(http.StatusOK, settings)
}
