package models

import (
	"context"
	"time"

	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/shopspring/decimal"
)

// CashTransaction is the append-only ledger of record. Rows are created only
// by the posting workflows and never updated or deleted.
type CashTransaction struct {
	ID                   string          `gorm:"primaryKey;size:36" json:"id"`
	TransactionCode      string          `gorm:"size:20;uniqueIndex;not null" json:"transaction_code"`
	TransactionDate      time.Time       `gorm:"index;not null" json:"transaction_date"`
	ItemId               *string         `gorm:"size:36" json:"item_id"`
	Description          string          `gorm:"size:255;not null" json:"description"`
	Quantity             decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	Amount               decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	LineType             LineType        `gorm:"size:20;not null" json:"line_type"`
	AccountId            string          `gorm:"size:36;index;not null" json:"account_id"`
	CashAccountId        string          `gorm:"size:36;index;not null" json:"cash_account_id"`
	OutletId             *string         `gorm:"size:36;index" json:"outlet_id"`
	ReimbursementBatchId *string         `gorm:"size:20;index" json:"reimbursement_batch_id"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type CashTransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	LineType  *LineType
	BatchId   *string
	OutletId  *string
	Limit     int
	Offset    int
}

func GetCashTransactions(ctx context.Context, filter CashTransactionFilter) ([]*CashTransaction, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&CashTransaction{})

	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("transaction_date <= ?", *filter.EndDate)
	}
	if filter.LineType != nil {
		dbCtx = dbCtx.Where("line_type = ?", *filter.LineType)
	}
	if filter.BatchId != nil {
		dbCtx = dbCtx.Where("reimbursement_batch_id = ?", *filter.BatchId)
	}
	if filter.OutletId != nil {
		dbCtx = dbCtx.Where("outlet_id = ?", *filter.OutletId)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = config.SearchLimit
	}

	var results []*CashTransaction
	err := dbCtx.Order("transaction_code").
		Limit(limit).Offset(filter.Offset).
		Find(&results).Error
	if err != nil {
		return nil, utils.InternalError("list cash transactions", err)
	}
	return results, nil
}
