package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/pkg/logging"
	"github.com/Skotchmaster/showcase/pkg/tokens"
)

const (
	AdminCookie    = "adminSession"
	adminClaimsKey = "admin_claims"
)

type AdminSessionMiddleware struct {
	Secret []byte
	Secure bool
}

func NewAdminSessionMiddleware(secret []byte, secure bool) *AdminSessionMiddleware {
	return &AdminSessionMiddleware{Secret: secret, Secure: secure}
}

// RequireAdmin lets the request through only with a valid admin session cookie.
// Expired or tampered cookies are cleared.
func (m *AdminSessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		ck, err := c.Cookie(AdminCookie)
		if err != nil || ck.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin access required")
		}

		claims, err := tokens.AdminClaimsFromToken(ck.Value, m.Secret)
		if err != nil {
			l.Warn("admin_session_rejected", "status", 401, "error", err)
			c.SetCookie(DeleteCookie(AdminCookie, "/", m.Secure))
			return echo.NewHTTPError(http.StatusUnauthorized, "admin session expired or invalid")
		}

		c.Set(adminClaimsKey, claims)
		return next(c)
	}
}

func ClaimsFrom(c echo.Context) (*tokens.AdminClaims, bool) {
	claims, ok := c.Get(adminClaimsKey).(*tokens.AdminClaims)
	return claims, ok
}

func CreateCookie(name, value, path string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
