package middleware

import (
	"net/http"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/labstack/echo/v4"
)

// Capability names one thing a route group lets the caller do. Routes are
// gated on capabilities, never on role names, so the role-to-capability table
// below is the single place access rules live.
type Capability string

const (
	CapShop          Capability = "shop"
	CapCatalogWrite  Capability = "catalog:write"
	CapOrdersManage  Capability = "orders:manage"
	CapUsersManage   Capability = "users:manage"
	CapAnalyticsView Capability = "analytics:view"
	CapAuditView     Capability = "audit:view"
	CapImportRun     Capability = "import:run"
)

var rolePolicy = map[string][]Capability{
	model.RoleCustomer: {CapShop},
	model.RoleManager:  {CapShop, CapCatalogWrite, CapOrdersManage, CapAnalyticsView, CapImportRun},
	model.RoleAdmin: {CapShop, CapCatalogWrite, CapOrdersManage, CapUsersManage,
		CapAnalyticsView, CapAuditView, CapImportRun},
}

// RoleHasCapability reports whether the role grants the capability
func RoleHasCapability(role string, capability Capability) bool {
	for _, granted := range rolePolicy[role] {
		if granted == capability {
			return true
		}
	}
	return false
}

// CapabilitiesForRole returns the capability list the role grants
func CapabilitiesForRole(role string) []Capability {
	return rolePolicy[role]
}

// RequireCapability rejects callers whose role does not grant the capability.
// It must run after Authenticator.Require.
func RequireCapability(capability Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c)
			if role == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if !RoleHasCapability(role, capability) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
