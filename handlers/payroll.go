package handlers

import (
	"net/http"

	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/dapurnusa/resto_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listPayrollEntriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.PayrollFilter{
			Employee: stringQuery(c, "employee"),
			Unposted: c.Query("unposted") == "true",
			Limit:    intQuery(c, "limit"),
			Offset:   intQuery(c, "offset"),
		}

		if v := c.Query("period_type"); v != "" {
			periodType, err := models.ParsePayrollPeriodType(v)
			if err != nil {
				renderError(c, utils.ValidationError("InvalidPeriodType", err.Error()))
				return
			}
			filter.PeriodType = &periodType
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

		results, err := models.GetPayrollEntries(c.Request.Context(), filter)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payroll_entries": results})
	}
}

func getPayrollEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := models.GetPayrollEntry(c.Request.Context(), c.Param("id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func createPayrollEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPayrollEntry
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.CreatePayrollEntry(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func updatePayrollEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPayrollEntry
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.UpdatePayrollEntry(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func deletePayrollEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeletePayrollEntry(c.Request.Context(), c.Param("id")); err != nil {
			renderError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type postPayrollRequest struct {
	Ids       []string `json:"ids" binding:"required"`
	AccountId string   `json:"account_id" binding:"required"`
}

func postPayrollHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postPayrollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := workflow.PostPayroll(c.Request.Context(), req.Ids, req.AccountId)
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
