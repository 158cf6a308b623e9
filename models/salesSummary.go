package models

import (
	"context"
	"errors"
	"time"

	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesDailySummary is one day's sales for a (channel, payment method,
// outlet) combination. POS-sourced rows are read-only to end users; only
// manual, unposted rows may be edited or deleted.
type SalesDailySummary struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	SalesDate      time.Time       `gorm:"uniqueIndex:idx_sales_grain,priority:1;not null" json:"sales_date"`
	Channel        string          `gorm:"size:50;uniqueIndex:idx_sales_grain,priority:2;not null" json:"channel"`
	PaymentMethod  string          `gorm:"size:50;uniqueIndex:idx_sales_grain,priority:3;not null" json:"payment_method"`
	OutletId       *string         `gorm:"size:36;uniqueIndex:idx_sales_grain,priority:4" json:"outlet_id"`
	GrossSales     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"gross_sales"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	NetSales       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"net_sales"`
	CashAccountId  string          `gorm:"size:36;not null" json:"cash_account_id"`
	Source         SalesSource     `gorm:"size:10;not null" json:"source"`
	PostedAt       *time.Time      `gorm:"index" json:"posted_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSalesDailySummary struct {
	SalesDate      string  `json:"sales_date" binding:"required"`
	Channel        string  `json:"channel" binding:"required"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	GrossSales     string  `json:"gross_sales" binding:"required"`
	DiscountAmount string  `json:"discount_amount"`
	NetSales       string  `json:"net_sales" binding:"required"`
	CashAccountId  string  `json:"cash_account_id" binding:"required"`
	OutletId       *string `json:"outlet_id"`
}

type UpdateSalesDailySummaryInput struct {
	Channel        string `json:"channel" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	GrossSales     string `json:"gross_sales" binding:"required"`
	DiscountAmount string `json:"discount_amount"`
	NetSales       string `json:"net_sales" binding:"required"`
	CashAccountId  string `json:"cash_account_id" binding:"required"`
}

type salesAmounts struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
}

func parseSalesAmounts(gross, discount, net string) (*salesAmounts, error) {
	g, err := utils.ParseDecimal(gross)
	if err != nil {
		return nil, err
	}
	if discount == "" {
		discount = "0"
	}
	d, err := utils.ParseDecimal(discount)
	if err != nil {
		return nil, err
	}
	n, err := utils.ParseDecimal(net)
	if err != nil {
		return nil, err
	}

	g = utils.RoundMoney(g)
	d = utils.RoundMoney(d)
	n = utils.RoundMoney(n)

	if !g.Sub(d).Equal(n) {
		return nil, utils.ValidationError("NetSalesMismatch",
			"net_sales must equal gross_sales minus discount_amount")
	}
	return &salesAmounts{Gross: g, Discount: d, Net: n}, nil
}

func CreateSalesDailySummary(ctx context.Context, input *NewSalesDailySummary) (*SalesDailySummary, error) {
	date, err := utils.ParseDate("sales_date", input.SalesDate)
	if err != nil {
		return nil, err
	}
	amounts, err := parseSalesAmounts(input.GrossSales, input.DiscountAmount, input.NetSales)
	if err != nil {
		return nil, err
	}

	summary := SalesDailySummary{
		ID:             uuid.NewString(),
		SalesDate:      date,
		Channel:        input.Channel,
		PaymentMethod:  input.PaymentMethod,
		OutletId:       input.OutletId,
		GrossSales:     amounts.Gross,
		DiscountAmount: amounts.Discount,
		NetSales:       amounts.Net,
		CashAccountId:  input.CashAccountId,
		Source:         SalesSourceManual,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&summary).Error; err != nil {
		if utils.IsDuplicateKeyErr(err) {
			return nil, utils.ConflictError("Conflict",
				"duplicate sales summary for this date, channel, payment method, and outlet")
		}
		return nil, utils.InternalError("create sales summary", err)
	}
	return &summary, nil
}

func UpdateSalesDailySummary(ctx context.Context, id string, input *UpdateSalesDailySummaryInput) (*SalesDailySummary, error) {
	amounts, err := parseSalesAmounts(input.GrossSales, input.DiscountAmount, input.NetSales)
	if err != nil {
		return nil, err
	}

	summary, err := GetSalesDailySummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary.Source != SalesSourceManual || summary.PostedAt != nil {
		return nil, utils.NotFoundError("NotFound", "summary not found, not manual, or already posted")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(summary).
		Where("source = ? AND posted_at IS NULL", SalesSourceManual).
		Updates(map[string]interface{}{
			"channel":         input.Channel,
			"payment_method":  input.PaymentMethod,
			"gross_sales":     amounts.Gross,
			"discount_amount": amounts.Discount,
			"net_sales":       amounts.Net,
			"cash_account_id": input.CashAccountId,
		}).Error
	if err != nil {
		if utils.IsDuplicateKeyErr(err) {
			return nil, utils.ConflictError("Conflict",
				"duplicate sales summary for this date, channel, payment method, and outlet")
		}
		return nil, utils.InternalError("update sales summary", err)
	}
	return GetSalesDailySummary(ctx, id)
}

// DeleteSalesDailySummary removes a manual, unposted summary only.
func DeleteSalesDailySummary(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("id = ? AND source = ? AND posted_at IS NULL", id, SalesSourceManual).
		Delete(&SalesDailySummary{})
	if result.Error != nil {
		return utils.InternalError("delete sales summary", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("NotFound", "summary not found, not manual, or already posted")
	}
	return nil
}

func GetSalesDailySummary(ctx context.Context, id string) (*SalesDailySummary, error) {
	db := config.GetDB()
	var result SalesDailySummary
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("NotFound", "sales summary not found")
	}
	if err != nil {
		return nil, utils.InternalError("get sales summary", err)
	}
	return &result, nil
}

type SalesSummaryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Channel   *string
	OutletId  *string
	Source    *SalesSource
	Limit     int
	Offset    int
}

func GetSalesDailySummaries(ctx context.Context, filter SalesSummaryFilter) ([]*SalesDailySummary, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&SalesDailySummary{})

	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("sales_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("sales_date <= ?", *filter.EndDate)
	}
	if filter.Channel != nil {
		dbCtx = dbCtx.Where("channel = ?", *filter.Channel)
	}
	if filter.OutletId != nil {
		dbCtx = dbCtx.Where("outlet_id = ?", *filter.OutletId)
	}
	if filter.Source != nil {
		dbCtx = dbCtx.Where("source = ?", *filter.Source)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = config.SearchLimit
	}

	var results []*SalesDailySummary
	err := dbCtx.Order("sales_date DESC, channel, payment_method").
		Limit(limit).Offset(filter.Offset).
		Find(&results).Error
	if err != nil {
		return nil, utils.InternalError("list sales summaries", err)
	}
	return results, nil
}
