package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	planssvc "github.com/fernhill/farmbox/internal/app/service/plans"
	"github.com/fernhill/farmbox/pkg/response"
)

// @Summary      List Plans (Admin)
// @Description  Plan catalogue, display order. ?active=true hides retired plans.
// @Tags         Plans
// @Produce      json
// @Success      200  {object}  handlers.RespPlans
// @Router       /api/v1/admin/plans [get]
func ApiListPlans(svc *planssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("active") == "true"
		rows, err := svc.List(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Create Plan (Admin)
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body plans.CreateRequest true "New plan"
// @Success      200  {object}  handlers.RespPlan
// @Router       /api/v1/admin/plans [post]
func ApiCreatePlan(svc *planssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req planssvc.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Update Plan (Admin)
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID"
// @Param        request body plans.UpdateRequest true "Fields to update"
// @Success      200  {object}  handlers.RespPlan
// @Router       /api/v1/admin/plans/{id}/update [post]
func ApiUpdatePlan(svc *planssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req planssvc.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

func RegisterPlanRoutes(r gin.IRouter, svc *planssvc.Service) {
	r.GET("/plans", ApiListPlans(svc))
	r.POST("/plans", ApiCreatePlan(svc))
	r.POST("/plans/:id/update", ApiUpdatePlan(svc))
}
