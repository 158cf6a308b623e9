package models

import (
	"time"

	"github.com/dapurnusa/resto_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const PosOrderStatusCompleted = "COMPLETED"

// PosOrder is one raw sales event from the POS, as delivered by the sync
// ingestion. These rows are the aggregation source for POS-synced
// SalesDailySummary rows; they are never posted directly.
type PosOrder struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	OutletId       string          `gorm:"size:36;index;not null" json:"outlet_id"`
	OrderNumber    string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	OrderType      string          `gorm:"size:20;not null" json:"order_type"`
	PaymentMethod  string          `gorm:"size:50;not null" json:"payment_method"`
	OrderDate      time.Time       `gorm:"index;not null" json:"order_date"`
	GrossAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"gross_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	Status         string          `gorm:"size:20;index;not null" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// UpsertPosOrder inserts or refreshes a raw order event keyed by order
// number. Sync delivery is at-least-once, so replays must be harmless.
func UpsertPosOrder(tx *gorm.DB, order *PosOrder) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_type", "payment_method", "order_date",
			"gross_amount", "discount_amount", "status", "updated_at",
		}),
	}).Create(order).Error
}

// PosSalesAggregate is one (date, order type, payment method) group of
// completed orders.
type PosSalesAggregate struct {
	SalesDate      time.Time       `json:"sales_date"`
	OrderType      string          `json:"order_type"`
	PaymentMethod  string          `json:"payment_method"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// AggregatePosSales groups completed orders for an outlet and date range.
func AggregatePosSales(tx *gorm.DB, outletId string, startDate, endDate time.Time) ([]PosSalesAggregate, error) {
	var rows []PosSalesAggregate
	err := tx.Model(&PosOrder{}).
		Select("order_date AS sales_date, order_type, payment_method, "+
			"SUM(gross_amount) AS gross_amount, SUM(discount_amount) AS discount_amount").
		Where("outlet_id = ? AND status = ? AND order_date BETWEEN ? AND ?",
			outletId, PosOrderStatusCompleted, startDate, endDate).
		Group("order_date, order_type, payment_method").
		Order("order_date, order_type, payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.InternalError("aggregate pos sales", err)
	}
	return rows, nil
}
