package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	subsvc "github.com/fernhill/farmbox/internal/app/service/subscription"
	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/response"
	"github.com/fernhill/farmbox/pkg/types"
)

// SubscriptionItem is the admin view of a subscription: the stored record
// plus the status derived at response time.
type SubscriptionItem struct {
	models.Subscription
	Status   types.SubscriptionStatus `json:"status"`
	Archived bool                     `json:"archived"`
}

func toSubscriptionItem(m *models.Subscription, now time.Time) *SubscriptionItem {
	return &SubscriptionItem{
		Subscription: *m,
		Status:       m.StatusAt(now),
		Archived:     m.Archived(now),
	}
}

func errCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, subsvc.ErrConflict):
		return response.APIResponseCodeConflict
	case errors.Is(err, subsvc.ErrSamePlan),
		errors.Is(err, subsvc.ErrNotBillable),
		errors.Is(err, subsvc.ErrRenewalSkipped),
		errors.Is(err, subsvc.ErrNotCancelled):
		return response.APIResponseCodeBadRequest
	}
	return response.APIResponseCodeError
}

// @Summary      Get Subscription (Admin)
// @Description  Loads one subscription with its derived lifecycle status.
// @Tags         Subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscriptions/{id} [get]
func ApiGetSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](errCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub, time.Now())))
	}
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

// @Summary      List Subscriptions (Admin)
// @Description  Paginated, filterable subscription listing.
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Param        request body subscription.ListRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/admin/subscriptions/list [post]
func ApiListSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.List(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		now := time.Now()
		items := lo.Map(res.Items, func(m *models.Subscription, _ int) *SubscriptionItem { return toSubscriptionItem(m, now) })
		c.JSON(http.StatusOK, response.OKT(&ListSubscriptionsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Renew Subscription (Admin)
// @Description  Charges one billing cycle and advances the billing date. A declined charge is a structured failure, not an HTTP error.
// @Tags         Subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespRenewal
// @Router       /api/v1/admin/subscriptions/{id}/renew [post]
func ApiRenewSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.ProcessRenewal(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](errCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type CancelSubscriptionRequest struct {
	Reason    string `json:"reason"`
	Immediate bool   `json:"immediate"`
}

// @Summary      Cancel Subscription (Admin)
// @Description  Cancels with a wind-down grace period and notifies the customer.
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.CancelSubscriptionRequest true "Cancellation reason"
// @Success      200  {object}  handlers.RespCancel
// @Router       /api/v1/admin/subscriptions/{id}/cancel [post]
func ApiCancelSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Cancel(c.Request.Context(), c.Param("id"), req.Reason, req.Immediate)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](errCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Reactivate Subscription (Admin)
// @Description  Clears a cancellation and restarts billing.
// @Tags         Subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscriptions/{id}/reactivate [post]
func ApiReactivateSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := svc.Reactivate(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](errCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub, time.Now())))
	}
}

type ChangePlanRequest struct {
	NewPlanID string `json:"new_plan_id"`
	Immediate bool   `json:"immediate"`
	Prorate   bool   `json:"prorate"`
}

// @Summary      Change Subscription Plan (Admin)
// @Description  Immediate (optionally prorated) or deferred-to-renewal plan change.
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.ChangePlanRequest true "Plan change options"
// @Success      200  {object}  handlers.RespPlanChange
// @Router       /api/v1/admin/subscriptions/{id}/change_plan [post]
func ApiChangePlan(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.NewPlanID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing new_plan_id"))
			return
		}
		res, err := svc.ChangePlan(c.Request.Context(), c.Param("id"), req.NewPlanID,
			subsvc.ChangePlanOptions{Immediate: req.Immediate, Prorate: req.Prorate})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](errCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Subscription Audit Trail (Admin)
// @Description  Append-only change history, creation time ascending.
// @Tags         Subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespAudits
// @Router       /api/v1/admin/subscriptions/{id}/audits [get]
func ApiSubscriptionAudits(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.Audits(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(entries))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subsvc.Service) {
	r.GET("/subscriptions/:id", ApiGetSubscription(svc))
	r.POST("/subscriptions/list", ApiListSubscriptions(svc))
	r.POST("/subscriptions/:id/renew", ApiRenewSubscription(svc))
	r.POST("/subscriptions/:id/cancel", ApiCancelSubscription(svc))
	r.POST("/subscriptions/:id/reactivate", ApiReactivateSubscription(svc))
	r.POST("/subscriptions/:id/change_plan", ApiChangePlan(svc))
	r.GET("/subscriptions/:id/audits", ApiSubscriptionAudits(svc))
}
