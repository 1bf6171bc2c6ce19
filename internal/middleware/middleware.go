package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"ecarry-photography/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var verifyAccessToken = service.VerifyAccessToken

func extractClaims(c echo.Context, secret string) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := verifyAccessToken(secret, parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer token 並將 claims 放入 context
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, secret)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom 取出 RequireAuth 放入的 claims
func ClaimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	if !ok || claims == nil || claims.UserID() == "" {
		return nil, false
	}
	return claims, true
}
