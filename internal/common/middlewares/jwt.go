package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/utils"
)

// ContextKeyClaims is the echo context key under which validated claims are
// stored for downstream handlers.
const ContextKeyClaims = "claims"

// JWTMiddleware rejects requests without a valid Bearer token.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  http.StatusUnauthorized,
					"message": "Authorization header missing",
					"data":    nil,
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  http.StatusUnauthorized,
					"message": "Invalid authorization header",
					"data":    nil,
				})
			}
			claims, err := utils.ValidateJWTToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  http.StatusUnauthorized,
					"message": "Invalid token: " + err.Error(),
					"data":    nil,
				})
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}
