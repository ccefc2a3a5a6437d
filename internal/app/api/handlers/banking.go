package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	banksvc "github.com/fernhill/farmbox/internal/app/service/banking"
	"github.com/fernhill/farmbox/pkg/response"
)

// @Summary      Import Bank CSV (Admin)
// @Description  Uploads a bank statement export. Malformed and duplicate rows are skipped; the batch commits atomically.
// @Tags         Banking
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Bank CSV export"
// @Param        auto_categorize formData bool false "Apply categorization rules on import"
// @Success      200  {object}  handlers.RespImport
// @Router       /api/v1/admin/bank/import [post]
func ApiImportBankCSV(svc *banksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing file upload"))
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		defer f.Close()

		autoCategorize := c.PostForm("auto_categorize") == "true"
		importedBy := c.GetString("operator")

		res, err := svc.ImportCSV(c.Request.Context(), f, fileHeader.Filename, importedBy, autoCategorize)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Bank Transactions (Admin)
// @Tags         Banking
// @Accept       json
// @Produce      json
// @Param        request body banking.ListRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListBankTransactions
// @Router       /api/v1/admin/bank/transactions/list [post]
func ApiListBankTransactions(svc *banksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req banksvc.ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.List(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type RecategorizeRequest struct {
	// Category empty clears the assignment.
	Category string `json:"category"`
}

// @Summary      Recategorize Bank Transaction (Admin)
// @Tags         Banking
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body handlers.RecategorizeRequest true "New category, empty to clear"
// @Success      200  {object}  handlers.RespBankTransaction
// @Router       /api/v1/admin/bank/transactions/{id}/categorize [post]
func ApiRecategorizeTransaction(svc *banksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecategorizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		var category *string
		if req.Category != "" {
			category = &req.Category
		}
		txn, err := svc.Recategorize(c.Request.Context(), c.Param("id"), category)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(txn))
	}
}

// @Summary      Bank Summary (Admin)
// @Description  Date-range totals by type and category, plus net profit.
// @Tags         Banking
// @Accept       json
// @Produce      json
// @Param        request body banking.SummaryRequest true "Date range and optional type filter"
// @Success      200  {object}  handlers.RespSummary
// @Router       /api/v1/admin/bank/summary [post]
func ApiBankSummary(svc *banksvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req banksvc.SummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Summary(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterBankingRoutes(r gin.IRouter, svc *banksvc.Service) {
	r.POST("/bank/import", ApiImportBankCSV(svc))
	r.POST("/bank/transactions/list", ApiListBankTransactions(svc))
	r.POST("/bank/transactions/:id/categorize", ApiRecategorizeTransaction(svc))
	r.POST("/bank/summary", ApiBankSummary(svc))
}
