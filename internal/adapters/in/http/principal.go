package http

import (
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the edge proxy after authentication. This service
// trusts them; credential checking happens upstream.
const (
	headerUserID    = "X-User-Id"
	headerUserRoles = "X-User-Roles"
)

// principalFromRequest builds the caller's principal from the identity
// headers. Roles arrive comma-separated; unknown role names are carried as-is
// and simply never match a policy check.
func principalFromRequest(ctx echo.Context) (services.Principal, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return services.Principal{}, echo.NewHTTPError(
			http.StatusUnauthorized, "missing or invalid "+headerUserID+" header")
	}

	var roles []services.Role
	for _, name := range strings.Split(ctx.Request().Header.Get(headerUserRoles), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			roles = append(roles, services.Role(strings.ToUpper(name)))
		}
	}

	principal, err := services.NewPrincipal(userID, roles...)
	if err != nil {
		return services.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid identity")
	}

	return principal, nil
}
