package handlers

import (
	"net/http"
	"time"

	"github.com/dapurnusa/resto_backend/expensemsg"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/gin-gonic/gin"
)

type parseExpenseMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type parsedExpenseItem struct {
	RawText     string `json:"raw_text"`
	Description string `json:"description"`
	Qty         string `json:"qty"`
	Unit        string `json:"unit"`
	TotalPrice  string `json:"total_price"`
}

// parseExpenseMessageHandler turns a raw WhatsApp-style expense report into
// draft items. Pure parse; nothing is persisted.
func parseExpenseMessageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseExpenseMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}

		result, err := expensemsg.Parse(req.Text, time.Now())
		if err != nil {
			renderError(c, err)
			return
		}

		items := make([]parsedExpenseItem, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, parsedExpenseItem{
				RawText:     item.RawText,
				Description: item.Description,
				Qty:         utils.QtyString(item.Qty),
				Unit:        item.Unit,
				TotalPrice:  utils.MoneyString(item.TotalPrice),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"expense_date": utils.FormatDate(result.ExpenseDate),
			"items":        items,
			"warnings":     result.Warnings,
		})
	}
}
