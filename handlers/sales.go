package handlers

import (
	"net/http"

	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/dapurnusa/resto_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listSalesSummariesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.SalesSummaryFilter{
			Channel:  stringQuery(c, "channel"),
			OutletId: stringQuery(c, "outlet_id"),
			Limit:    intQuery(c, "limit"),
			Offset:   intQuery(c, "offset"),
		}

		if v := c.Query("source"); v != "" {
			source := models.SalesSource(v)
			if source != models.SalesSourcePos && source != models.SalesSourceManual {
				renderError(c, utils.ValidationError("InvalidSource", "source must be pos or manual"))
				return
			}
			filter.Source = &source
		}

		var err error
		if filter.StartDate, err = dateQuery(c, "start_date"); err != nil {
			renderError(c, err)
			return
		}
		if filter.EndDate, err = dateQuery(c, "end_date"); err != nil {
			renderError(c, err)
			return
		}

		results, err := models.GetSalesDailySummaries(c.Request.Context(), filter)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summaries": results})
	}
}

func getSalesSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := models.GetSalesDailySummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func createSalesSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSalesDailySummary
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.CreateSalesDailySummary(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func updateSalesSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateSalesDailySummaryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.UpdateSalesDailySummary(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func deleteSalesSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteSalesDailySummary(c.Request.Context(), c.Param("id")); err != nil {
			renderError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type syncPosRequest struct {
	StartDate             string            `json:"start_date" binding:"required"`
	EndDate               string            `json:"end_date" binding:"required"`
	OutletId              string            `json:"outlet_id" binding:"required"`
	PaymentMethodAccounts map[string]string `json:"payment_method_accounts" binding:"required"`
}

func syncPosSalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req syncPosRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		startDate, err := utils.ParseDate("start_date", req.StartDate)
		if err != nil {
			renderError(c, err)
			return
		}
		endDate, err := utils.ParseDate("end_date", req.EndDate)
		if err != nil {
			renderError(c, err)
			return
		}
		if endDate.Before(startDate) {
			renderError(c, utils.ValidationError("InvalidDateRange", "end_date must not be before start_date"))
			return
		}

		result, err := workflow.SyncPosSales(c.Request.Context(), workflow.SyncPosInput{
			StartDate:             startDate,
			EndDate:               endDate,
			OutletId:              req.OutletId,
			PaymentMethodAccounts: req.PaymentMethodAccounts,
		})
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"synced_count": result.SyncedCount,
			"summaries":    result.Summaries,
		})
	}
}

type postSalesRequest struct {
	SalesDate string  `json:"sales_date" binding:"required"`
	OutletId  *string `json:"outlet_id"`
	AccountId string  `json:"account_id" binding:"required"`
}

func postSalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postSalesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		salesDate, err := utils.ParseDate("sales_date", req.SalesDate)
		if err != nil {
			renderError(c, err)
			return
		}

		result, err := workflow.PostSales(c.Request.Context(), salesDate, req.OutletId, req.AccountId)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"posted_count":         result.PostedCount,
			"transactions_created": result.TransactionsCreated,
			"transactions":         result.Transactions,
		})
	}
}
