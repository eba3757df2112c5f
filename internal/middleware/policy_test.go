package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleHasCapability(t *testing.T) {
	assert.True(t, RoleHasCapability(model.RoleCustomer, CapShop))
	assert.False(t, RoleHasCapability(model.RoleCustomer, CapCatalogWrite))
	assert.False(t, RoleHasCapability(model.RoleCustomer, CapUsersManage))

	assert.True(t, RoleHasCapability(model.RoleManager, CapShop))
	assert.True(t, RoleHasCapability(model.RoleManager, CapCatalogWrite))
	assert.True(t, RoleHasCapability(model.RoleManager, CapOrdersManage))
	assert.True(t, RoleHasCapability(model.RoleManager, CapAnalyticsView))
	assert.True(t, RoleHasCapability(model.RoleManager, CapImportRun))
	assert.False(t, RoleHasCapability(model.RoleManager, CapUsersManage))
	assert.False(t, RoleHasCapability(model.RoleManager, CapAuditView))

	for _, capability := range []Capability{
		CapShop, CapCatalogWrite, CapOrdersManage, CapUsersManage,
		CapAnalyticsView, CapAuditView, CapImportRun,
	} {
		assert.True(t, RoleHasCapability(model.RoleAdmin, capability), "admin missing %s", capability)
	}

	assert.False(t, RoleHasCapability("", CapShop))
	assert.False(t, RoleHasCapability("intern", CapShop))
}

func TestCapabilitiesForRole(t *testing.T) {
	assert.Equal(t, []Capability{CapShop}, CapabilitiesForRole(model.RoleCustomer))
	assert.Len(t, CapabilitiesForRole(model.RoleAdmin), 7)
	assert.Empty(t, CapabilitiesForRole("unknown"))
}

func invokeWithRole(t *testing.T, role string, capability Capability) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := RequireCapability(capability)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireCapability(t *testing.T) {
	assert.Equal(t, http.StatusOK, invokeWithRole(t, model.RoleCustomer, CapShop).Code)
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, model.RoleCustomer, CapCatalogWrite).Code)
	assert.Equal(t, http.StatusUnauthorized, invokeWithRole(t, "", CapShop).Code)
	assert.Equal(t, http.StatusOK, invokeWithRole(t, model.RoleAdmin, CapAuditView).Code)
}
