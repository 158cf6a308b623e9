package handlers

import (
	"net/http"

	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/gin-gonic/gin"
)

// The ledger is append-only; the only surface it gets is this read-only list.
func listCashTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.CashTransactionFilter{
			BatchId:  stringQuery(c, "batch_id"),
			OutletId: stringQuery(c, "outlet_id"),
			Limit:    intQuery(c, "limit"),
			Offset:   intQuery(c, "offset"),
		}

		if v := c.Query("line_type"); v != "" {
			lineType, err := models.ParseLineType(v)
			if err != nil {
				renderError(c, utils.ValidationError("InvalidLineType", err.Error()))
				return
			}
			filter.LineType = &lineType
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

		results, err := models.GetCashTransactions(c.Request.Context(), filter)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": results})
	}
}
