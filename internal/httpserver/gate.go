package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"
	middleware "github.com/Skotchmaster/showcase/pkg/middleware/auth"
	"github.com/Skotchmaster/showcase/pkg/tokens"

	"github.com/Skotchmaster/showcase/internal/transport"
	"github.com/Skotchmaster/showcase/internal/unlock"
)

const GateCookie = "showcase_gate"

type GateHTTP struct {
	Gates      *unlock.Registry
	Secret     []byte
	SessionTTL time.Duration
	Secure     bool
	Now        func() time.Time
}

type gateResponse struct {
	unlock.Snapshot
	Admin         bool  `json:"admin"`
	SessionExpiry int64 `json:"sessionExpiry,omitempty"`
}

func (h *GateHTTP) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// gate returns the caller's gate, issuing a visitor cookie on first contact.
func (h *GateHTTP) gate(c echo.Context) (string, *unlock.Gate) {
	if ck, err := c.Cookie(GateCookie); err == nil {
		if _, err := uuid.Parse(ck.Value); err == nil {
			return ck.Value, h.Gates.Get(ck.Value)
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     GateCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, h.Gates.Get(id)
}

func (h *GateHTTP) respond(c echo.Context, snap unlock.Snapshot) error {
	resp := gateResponse{Snapshot: snap}
	if ck, err := c.Cookie(middleware.AdminCookie); err == nil {
		if claims, err := tokens.AdminClaimsFromToken(ck.Value, h.Secret); err == nil && claims.ExpiresAt != nil {
			resp.Admin = true
			resp.SessionExpiry = claims.ExpiresAt.UnixMilli()
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *GateHTTP) State(c echo.Context) error {
	_, g := h.gate(c)
	return h.respond(c, g.Snapshot())
}

func (h *GateHTTP) LogoClick(c echo.Context) error {
	_, g := h.gate(c)
	return h.respond(c, g.LogoClick())
}

func (h *GateHTTP) OpenCodeEntry(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "gate.open")

	_, g := h.gate(c)
	snap, err := g.OpenCodeEntry()
	if err != nil {
		return gateFail(l, "gate_open_failed", err, snap)
	}
	return h.respond(c, snap)
}

func (h *GateHTTP) Cancel(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "gate.cancel")

	_, g := h.gate(c)
	snap, err := g.Cancel()
	if err != nil {
		return gateFail(l, "gate_cancel_failed", err, snap)
	}
	return h.respond(c, snap)
}

// Submit checks the code and, on success, issues the admin session cookie.
func (h *GateHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gate.submit")

	var req transport.SubmitCodeRequest
	if err := bind(c, l, "gate_submit_failed", &req); err != nil {
		return err
	}

	id, g := h.gate(c)
	snap, err := g.Submit(ctx, req.Code)
	if err != nil {
		return gateFail(l, "gate_submit_failed", err, snap)
	}

	token, exp, err := tokens.NewAdminToken(h.Secret, id, h.now(), h.SessionTTL)
	if err != nil {
		l.Error("gate_submit_failed", "status", 500, "reason", "cannot sign session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot start admin session")
	}
	c.SetCookie(middleware.CreateCookie(middleware.AdminCookie, token, "/", exp, h.Secure))

	l.Info("admin_unlocked", "gate_id", id)
	return c.JSON(http.StatusOK, gateResponse{Snapshot: snap, Admin: true, SessionExpiry: exp.UnixMilli()})
}

// Close ends the admin session and re-locks the caller's gate.
func (h *GateHTTP) Close(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "gate.close")

	_, g := h.gate(c)
	snap, err := g.Close()
	if err != nil && !errors.Is(err, unlock.ErrWrongState) {
		return gateFail(l, "gate_close_failed", err, snap)
	}
	c.SetCookie(middleware.DeleteCookie(middleware.AdminCookie, "/", h.Secure))

	l.Info("admin_closed")
	return c.JSON(http.StatusOK, gateResponse{Snapshot: snap})
}

func gateFail(l *slog.Logger, event string, err error, snap unlock.Snapshot) error {
	status, msg := http.StatusInternalServerError, "cannot check code"
	switch {
	case errors.Is(err, unlock.ErrCodeFormat):
		status, msg = http.StatusBadRequest, "Please enter a 6-digit code"
	case errors.Is(err, unlock.ErrInvalidCode):
		status, msg = http.StatusUnauthorized, "Invalid code"
	case errors.Is(err, unlock.ErrWrongState):
		status, msg = http.StatusConflict, "not allowed in state "+snap.State.String()
	}
	if status >= 500 {
		l.Error(event, "status", status, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, map[string]any{"message": msg, "gate": snap})
}
