package middleware

import (
	"net/http"
	"strings"

	"github.com/nitwit45/todo-demo/pkg/response"
	"github.com/nitwit45/todo-demo/pkg/token"

	"github.com/labstack/echo/v4"
)

// BearerAuthMiddleware verifies the access token on protected routes and
// injects the resolved claims into the request context. Handlers never parse
// raw tokens themselves.
func BearerAuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return response.Error(c, http.StatusUnauthorized, "missing authorization header")
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return response.Error(c, http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.VerifyAccess(tokenString)
			if err != nil {
				return response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}
