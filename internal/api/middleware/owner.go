package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/arthsaathi/finlit-engine/internal/core/domain"
)

// RequireOwner lets a request through only when the authenticated subject is
// the :userId in the path, or holds the admin role. It must run after Auth.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == domain.RoleAdmin {
				return next(c)
			}

			sub, _ := c.Get(CtxSubject).(string)
			if sub == "" || sub != c.Param("userId") {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
