package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func routeSet(r *gin.Engine) func(string) bool {
	routes := r.Routes()
	return func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}
}

func TestRegisterSubscriptionRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api/v1/admin"), nil)

	contains := routeSet(r)
	require.True(t, contains("GET /api/v1/admin/subscriptions/:id"))
	require.True(t, contains("POST /api/v1/admin/subscriptions/list"))
	require.True(t, contains("POST /api/v1/admin/subscriptions/:id/renew"))
	require.True(t, contains("POST /api/v1/admin/subscriptions/:id/cancel"))
	require.True(t, contains("POST /api/v1/admin/subscriptions/:id/reactivate"))
	require.True(t, contains("POST /api/v1/admin/subscriptions/:id/change_plan"))
	require.True(t, contains("GET /api/v1/admin/subscriptions/:id/audits"))
}

func TestRegisterBankingRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterBankingRoutes(r.Group("/api/v1/admin"), nil)

	contains := routeSet(r)
	require.True(t, contains("POST /api/v1/admin/bank/import"))
	require.True(t, contains("POST /api/v1/admin/bank/transactions/list"))
	require.True(t, contains("POST /api/v1/admin/bank/transactions/:id/categorize"))
	require.True(t, contains("POST /api/v1/admin/bank/summary"))
}

func TestRegisterPlanRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterPlanRoutes(r.Group("/api/v1/admin"), nil)

	contains := routeSet(r)
	require.True(t, contains("GET /api/v1/admin/plans"))
	require.True(t, contains("POST /api/v1/admin/plans"))
	require.True(t, contains("POST /api/v1/admin/plans/:id/update"))
}
