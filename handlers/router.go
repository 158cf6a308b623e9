// Package handlers exposes the REST surface under /api/v1. Handlers bind and
// validate the wire shape; all domain rules live in models and workflow.
package handlers

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api *gin.RouterGroup) {
	reimbursements := api.Group("/reimbursements")
	{
		reimbursements.GET("", listReimbursementsHandler())
		reimbursements.POST("", createReimbursementHandler())
		reimbursements.GET("/:id", getReimbursementHandler())
		reimbursements.PUT("/:id", updateReimbursementHandler())
		reimbursements.DELETE("/:id", deleteReimbursementHandler())
		reimbursements.POST("/batch", assignReimbursementBatchHandler())
		reimbursements.POST("/batch/post", postReimbursementBatchHandler())
	}

	sales := api.Group("/sales")
	{
		sales.GET("", listSalesSummariesHandler())
		sales.POST("", createSalesSummaryHandler())
		sales.GET("/:id", getSalesSummaryHandler())
		sales.PUT("/:id", updateSalesSummaryHandler())
		sales.DELETE("/:id", deleteSalesSummaryHandler())
		sales.POST("/sync-pos", syncPosSalesHandler())
		sales.POST("/post", postSalesHandler())
	}

	payroll := api.Group("/payroll")
	{
		payroll.GET("", listPayrollEntriesHandler())
		payroll.POST("", createPayrollEntryHandler())
		payroll.GET("/:id", getPayrollEntryHandler())
		payroll.PUT("/:id", updatePayrollEntryHandler())
		payroll.DELETE("/:id", deletePayrollEntryHandler())
		payroll.POST("/post", postPayrollHandler())
	}

	api.POST("/expense-messages/parse", parseExpenseMessageHandler())
	api.GET("/transactions", listCashTransactionsHandler())
}
