package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves session credentials into a request-scoped principal.
type AuthMiddleware struct {
	issuer service.SessionIssuer
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(issuer service.SessionIssuer, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, logger: logger}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// Authenticate decodes the session credential once per request. A missing or invalid
// credential leaves the request anonymous; routes opt in to enforcement with RequireAuth.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c)
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		claims, err := m.issuer.Decode(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Ignoring invalid session credential", slog.Any("error", err))

			return next(c)
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return next(c)
		}

		principal := &deliverycontext.Principal{
			AccountID: accountID,
			Email:     claims.Email,
			Roles:     entity.RolesFromStrings(claims.Roles),
		}
		ctx = deliverycontext.WithPrincipal(ctx, principal)
		ctx = deliverycontext.WithLogger(ctx,
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("account_id", accountID.String())))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireAuth rejects anonymous requests. It must be used after Authenticate.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetPrincipal(c.Request().Context()); !ok {
			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// RequireRole rejects callers holding none of the given roles. It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
			if !ok {
				return domainerrors.ErrUnauthorized
			}

			for _, role := range roles {
				if principal.HasRole(role) {
					return next(c)
				}
			}

			return domainerrors.ErrForbidden
		}
	}
}
