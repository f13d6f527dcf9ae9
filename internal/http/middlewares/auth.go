package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"task-manager-api.com/task-manager-api/internal/auth"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	"task-manager-api.com/task-manager-api/internal/services"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Identity, *auth.Claims, error)
}

// RequireAuth resolves "Authorization: Bearer <token>" to the caller
// identity and rejects the request otherwise.
func RequireAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return apperrors.ErrUnauthorized
			}

			identity, claims, err := authenticator.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(identityKey, identity)
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (services.Identity, bool) {
	identity, ok := c.Get(identityKey).(services.Identity)
	return identity, ok
}

func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

// KeyByCaller keys rate limiting on the authenticated user, falling back
// to the client IP.
func KeyByCaller(c echo.Context) string {
	if identity, ok := IdentityFrom(c); ok {
		return "user:" + identity.UserID
	}
	return "ip:" + c.RealIP()
}
