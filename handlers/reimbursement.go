package handlers

import (
	"net/http"

	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/dapurnusa/resto_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listReimbursementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.ReimbursementFilter{
			Requester: stringQuery(c, "requester"),
			BatchId:   stringQuery(c, "batch_id"),
			Limit:     intQuery(c, "limit"),
			Offset:    intQuery(c, "offset"),
		}

		if v := c.Query("status"); v != "" {
			status, err := models.ParseReimbursementStatus(v)
			if err != nil {
				renderError(c, utils.ValidationError("InvalidStatus", err.Error()))
				return
			}
			filter.Status = &status
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

		results, err := models.GetReimbursementRequests(c.Request.Context(), filter)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reimbursements": results})
	}
}

func getReimbursementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := models.GetReimbursementRequest(c.Request.Context(), c.Param("id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func createReimbursementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewReimbursementRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.CreateReimbursementRequest(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func updateReimbursementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateReimbursementRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			renderBindError(c, err)
			return
		}
		result, err := models.UpdateReimbursementRequest(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func deleteReimbursementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteReimbursementRequest(c.Request.Context(), c.Param("id")); err != nil {
			renderError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type assignBatchRequest struct {
	Ids []string `json:"ids" binding:"required"`
}

func assignReimbursementBatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		batchId, assigned, err := workflow.AssignReimbursementBatch(c.Request.Context(), req.Ids)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"batch_id":  batchId,
			"requested": len(req.Ids),
			"assigned":  assigned,
		})
	}
}

type postBatchRequest struct {
	BatchId       string `json:"batch_id" binding:"required"`
	PaymentDate   string `json:"payment_date" binding:"required"`
	CashAccountId string `json:"cash_account_id" binding:"required"`
}

func postReimbursementBatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		paymentDate, err := utils.ParseDate("payment_date", req.PaymentDate)
		if err != nil {
			renderError(c, err)
			return
		}

		result, err := workflow.PostReimbursementBatch(c.Request.Context(), req.BatchId, paymentDate, req.CashAccountId)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"batch_id":     result.BatchId,
			"posted":       result.Posted,
			"transactions": result.Transactions,
		})
	}
}
