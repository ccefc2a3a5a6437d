package handlers

import (
	banksvc "github.com/fernhill/farmbox/internal/app/service/banking"
	subsvc "github.com/fernhill/farmbox/internal/app/service/subscription"
	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/response"
)

// Concrete envelope instantiations referenced by swagger annotations; swag
// cannot expand the generic APIResponse on its own.

type RespOK = response.APIResponse[any]

type RespSubscription = response.APIResponse[*SubscriptionItem]

type RespListSubscriptions = response.APIResponse[*ListSubscriptionsResponse]

type RespRenewal = response.APIResponse[*subsvc.RenewalResult]

type RespCancel = response.APIResponse[*subsvc.CancelResult]

type RespPlanChange = response.APIResponse[*subsvc.PlanChangeResult]

type RespAudits = response.APIResponse[[]*models.SubscriptionAudit]

type RespPlan = response.APIResponse[*models.Plan]

type RespPlans = response.APIResponse[[]*models.Plan]

type RespImport = response.APIResponse[*banksvc.ImportResult]

type RespListBankTransactions = response.APIResponse[*banksvc.ListResponse]

type RespBankTransaction = response.APIResponse[*models.BankTransaction]

type RespSummary = response.APIResponse[*banksvc.Summary]
