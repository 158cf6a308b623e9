package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// POS order_type -> accounting channel name.
var orderTypeToChannel = map[string]string{
	"DINE_IN":  "Dine In",
	"TAKEAWAY": "Take Away",
	"CATERING": "Catering",
	"DELIVERY": "Delivery",
}

func channelForOrderType(orderType string) string {
	if channel, ok := orderTypeToChannel[orderType]; ok {
		return channel
	}
	return orderType
}

type SyncPosInput struct {
	StartDate             time.Time
	EndDate               time.Time
	OutletId              string
	PaymentMethodAccounts map[string]string
}

type SyncPosResult struct {
	SyncedCount int
	Summaries   []*models.SalesDailySummary
}

// SyncPosSales aggregates completed POS orders into daily summaries with
// source=pos. A payment method present in the aggregated data but absent from
// the account mapping aborts the whole sync before any write.
func SyncPosSales(ctx context.Context, input SyncPosInput) (*SyncPosResult, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	var out *SyncPosResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := models.AggregatePosSales(tx, input.OutletId, input.StartDate, input.EndDate)
		if err != nil {
			config.LogError(logger, "salesWorkflow.go", "SyncPosSales", "AggregatePosSales", input.OutletId, err)
			return err
		}

		// Validate the whole mapping up front: the sync must not silently
		// drop one payment method's sales.
		for _, row := range rows {
			if _, ok := input.PaymentMethodAccounts[row.PaymentMethod]; !ok {
				return utils.ValidationError("MissingAccountMapping",
					fmt.Sprintf("no cash account mapping for payment method %s", row.PaymentMethod))
			}
		}

		summaries := make([]*models.SalesDailySummary, 0, len(rows))
		for _, row := range rows {
			gross := utils.RoundMoney(row.GrossAmount)
			discount := utils.RoundMoney(row.DiscountAmount)
			outletId := input.OutletId

			summary := &models.SalesDailySummary{
				ID:             uuid.NewString(),
				SalesDate:      row.SalesDate,
				Channel:        channelForOrderType(row.OrderType),
				PaymentMethod:  row.PaymentMethod,
				OutletId:       &outletId,
				GrossSales:     gross,
				DiscountAmount: discount,
				NetSales:       gross.Sub(discount),
				CashAccountId:  input.PaymentMethodAccounts[row.PaymentMethod],
				Source:         models.SalesSourcePos,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "sales_date"}, {Name: "channel"},
					{Name: "payment_method"}, {Name: "outlet_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"gross_sales", "discount_amount", "net_sales",
					"cash_account_id", "source", "updated_at",
				}),
			}).Create(summary).Error
			if err != nil {
				config.LogError(logger, "salesWorkflow.go", "SyncPosSales", "UpsertSummary", summary, err)
				return utils.InternalError("upsert sales summary", err)
			}
			summaries = append(summaries, summary)
		}

		out = &SyncPosResult{SyncedCount: len(summaries), Summaries: summaries}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type PostSalesResult struct {
	PostedCount         int
	TransactionsCreated int
	Transactions        []*models.CashTransaction
}

// PostSales posts every unposted summary for the date (and outlet, when
// given) as a SALES ledger entry, then marks them posted, all inside one
// transaction. Zero unposted rows is an explicit failure, not a no-op.
func PostSales(ctx context.Context, salesDate time.Time, outletId *string, accountId string) (*PostSalesResult, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	redisLock := obtainRedisPostingLock(ctx, ledgerLockName)
	defer releaseRedisPostingLock(ctx, redisLock)

	var out *PostSalesResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx, ledgerLockName); err != nil {
			config.LogError(logger, "salesWorkflow.go", "PostSales", "AcquirePostingLock", salesDate, err)
			return utils.InternalError("acquire posting lock", err)
		}
		defer ReleasePostingLock(tx, ledgerLockName)

		dbCtx := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sales_date = ? AND posted_at IS NULL", salesDate)
		if outletId != nil {
			dbCtx = dbCtx.Where("outlet_id = ?", *outletId)
		}
		var fetched []*models.SalesDailySummary
		if err := dbCtx.Find(&fetched).Error; err != nil {
			config.LogError(logger, "salesWorkflow.go", "PostSales", "FetchUnposted", salesDate, err)
			return utils.InternalError("fetch unposted summaries", err)
		}

		summaries, err := planSalesPosting(fetched)
		if err != nil {
			return err
		}

		codes, err := models.NextCodes(tx, models.SequenceKindCashTransaction, len(summaries))
		if err != nil {
			config.LogError(logger, "salesWorkflow.go", "PostSales", "NextCodes", salesDate, err)
			return err
		}

		transactions := make([]*models.CashTransaction, 0, len(summaries))
		ids := make([]string, 0, len(summaries))
		for i, summary := range summaries {
			entry := &models.CashTransaction{
				ID:              uuid.NewString(),
				TransactionCode: codes[i],
				TransactionDate: salesDate,
				Description: fmt.Sprintf("Penjualan %s %s %s",
					summary.Channel, summary.PaymentMethod, utils.FormatDate(salesDate)),
				Quantity:      decimal.NewFromInt(1),
				UnitPrice:     summary.NetSales,
				Amount:        summary.NetSales,
				LineType:      models.LineTypeSales,
				AccountId:     accountId,
				CashAccountId: summary.CashAccountId,
				OutletId:      summary.OutletId,
			}
			if err := tx.Create(entry).Error; err != nil {
				config.LogError(logger, "salesWorkflow.go", "PostSales", "CreateCashTransaction", entry.TransactionCode, err)
				return utils.InternalError("create cash transaction", err)
			}
			transactions = append(transactions, entry)
			ids = append(ids, summary.ID)
		}

		now := time.Now()
		if err := tx.Model(&models.SalesDailySummary{}).
			Where("id IN ?", ids).
			Update("posted_at", now).Error; err != nil {
			config.LogError(logger, "salesWorkflow.go", "PostSales", "MarkPosted", ids, err)
			return utils.InternalError("mark summaries posted", err)
		}

		out = &PostSalesResult{
			PostedCount:         len(summaries),
			TransactionsCreated: len(transactions),
			Transactions:        transactions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
