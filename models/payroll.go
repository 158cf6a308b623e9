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

// PayrollEntry is one employee's pay for a period, posted into the ledger as
// an EXPENSE line. Editing and deleting are restricted to unposted entries.
type PayrollEntry struct {
	ID            string            `gorm:"primaryKey;size:36" json:"id"`
	PayrollDate   time.Time         `gorm:"index;not null" json:"payroll_date"`
	PeriodType    PayrollPeriodType `gorm:"size:10;not null" json:"period_type"`
	PeriodRef     *string           `gorm:"size:50" json:"period_ref"`
	EmployeeName  string            `gorm:"size:100;index;not null" json:"employee_name"`
	GrossPay      decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"gross_pay"`
	PaymentMethod string            `gorm:"size:50;not null" json:"payment_method"`
	CashAccountId string            `gorm:"size:36;not null" json:"cash_account_id"`
	OutletId      *string           `gorm:"size:36;index" json:"outlet_id"`
	PostedAt      *time.Time        `gorm:"index" json:"posted_at"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayrollEntry struct {
	PayrollDate   string  `json:"payroll_date" binding:"required"`
	PeriodType    string  `json:"period_type" binding:"required"`
	PeriodRef     *string `json:"period_ref"`
	EmployeeName  string  `json:"employee_name" binding:"required"`
	GrossPay      string  `json:"gross_pay" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	CashAccountId string  `json:"cash_account_id" binding:"required"`
	OutletId      *string `json:"outlet_id"`
}

func CreatePayrollEntry(ctx context.Context, input *NewPayrollEntry) (*PayrollEntry, error) {
	date, err := utils.ParseDate("payroll_date", input.PayrollDate)
	if err != nil {
		return nil, err
	}
	periodType, err := ParsePayrollPeriodType(input.PeriodType)
	if err != nil {
		return nil, utils.ValidationError("InvalidPeriodType", err.Error())
	}
	grossPay, err := utils.ParseDecimal(input.GrossPay)
	if err != nil {
		return nil, err
	}

	entry := PayrollEntry{
		ID:            uuid.NewString(),
		PayrollDate:   date,
		PeriodType:    periodType,
		PeriodRef:     input.PeriodRef,
		EmployeeName:  input.EmployeeName,
		GrossPay:      utils.RoundMoney(grossPay),
		PaymentMethod: input.PaymentMethod,
		CashAccountId: input.CashAccountId,
		OutletId:      input.OutletId,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, utils.InternalError("create payroll entry", err)
	}
	return &entry, nil
}

func UpdatePayrollEntry(ctx context.Context, id string, input *NewPayrollEntry) (*PayrollEntry, error) {
	date, err := utils.ParseDate("payroll_date", input.PayrollDate)
	if err != nil {
		return nil, err
	}
	periodType, err := ParsePayrollPeriodType(input.PeriodType)
	if err != nil {
		return nil, utils.ValidationError("InvalidPeriodType", err.Error())
	}
	grossPay, err := utils.ParseDecimal(input.GrossPay)
	if err != nil {
		return nil, err
	}

	entry, err := GetPayrollEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.PostedAt != nil {
		return nil, utils.NotFoundError("NotFound", "payroll entry not found or already posted")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(entry).
		Where("posted_at IS NULL").
		Updates(map[string]interface{}{
			"payroll_date":    date,
			"period_type":     periodType,
			"period_ref":      input.PeriodRef,
			"employee_name":   input.EmployeeName,
			"gross_pay":       utils.RoundMoney(grossPay),
			"payment_method":  input.PaymentMethod,
			"cash_account_id": input.CashAccountId,
			"outlet_id":       input.OutletId,
		}).Error
	if err != nil {
		return nil, utils.InternalError("update payroll entry", err)
	}
	return GetPayrollEntry(ctx, id)
}

// DeletePayrollEntry removes an unposted entry only.
func DeletePayrollEntry(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("id = ? AND posted_at IS NULL", id).
		Delete(&PayrollEntry{})
	if result.Error != nil {
		return utils.InternalError("delete payroll entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("NotFound", "payroll entry not found or already posted")
	}
	return nil
}

func GetPayrollEntry(ctx context.Context, id string) (*PayrollEntry, error) {
	db := config.GetDB()
	var result PayrollEntry
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("NotFound", "payroll entry not found")
	}
	if err != nil {
		return nil, utils.InternalError("get payroll entry", err)
	}
	return &result, nil
}

type PayrollFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	PeriodType *PayrollPeriodType
	Employee   *string
	Unposted   bool
	Limit      int
	Offset     int
}

func GetPayrollEntries(ctx context.Context, filter PayrollFilter) ([]*PayrollEntry, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&PayrollEntry{})

	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("payroll_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("payroll_date <= ?", *filter.EndDate)
	}
	if filter.PeriodType != nil {
		dbCtx = dbCtx.Where("period_type = ?", *filter.PeriodType)
	}
	if filter.Employee != nil {
		dbCtx = dbCtx.Where("employee_name = ?", *filter.Employee)
	}
	if filter.Unposted {
		dbCtx = dbCtx.Where("posted_at IS NULL")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = config.SearchLimit
	}

	var results []*PayrollEntry
	err := dbCtx.Order("payroll_date DESC, employee_name").
		Limit(limit).Offset(filter.Offset).
		Find(&results).Error
	if err != nil {
		return nil, utils.InternalError("list payroll entries", err)
	}
	return results, nil
}
