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

// ReimbursementRequest is one expense claim moving through the
// Draft -> Ready -> Posted lifecycle. Amount is caller-authoritative and
// validated against qty x unit_price; it is never recomputed server-side.
// Posted rows are immutable.
type ReimbursementRequest struct {
	ID          string              `gorm:"primaryKey;size:36" json:"id"`
	BatchId     *string             `gorm:"size:20;index" json:"batch_id"`
	ExpenseDate time.Time           `gorm:"index;not null" json:"expense_date"`
	ItemId      *string             `gorm:"size:36" json:"item_id"`
	Description string              `gorm:"size:255;not null" json:"description"`
	Qty         decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"qty"`
	UnitPrice   decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	Amount      decimal.Decimal     `gorm:"type:decimal(20,2);not null" json:"amount"`
	LineType    LineType            `gorm:"size:20;not null" json:"line_type"`
	AccountId   string              `gorm:"size:36;index;not null" json:"account_id"`
	Status      ReimbursementStatus `gorm:"size:10;index;not null;default:'Draft'" json:"status"`
	Requester   string              `gorm:"size:100;index;not null" json:"requester"`
	ReceiptLink *string             `gorm:"size:500" json:"receipt_link"`
	PostedAt    *time.Time          `json:"posted_at"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewReimbursementRequest is the create input. Decimal fields are wire
// strings, never floats.
type NewReimbursementRequest struct {
	ExpenseDate string  `json:"expense_date" binding:"required"`
	ItemId      *string `json:"item_id"`
	Description string  `json:"description" binding:"required"`
	Qty         string  `json:"qty" binding:"required"`
	UnitPrice   string  `json:"unit_price" binding:"required"`
	Amount      string  `json:"amount" binding:"required"`
	LineType    string  `json:"line_type" binding:"required"`
	AccountId   string  `json:"account_id" binding:"required"`
	Status      string  `json:"status"`
	Requester   string  `json:"requester" binding:"required"`
	ReceiptLink *string `json:"receipt_link"`
}

type UpdateReimbursementRequestInput struct {
	ExpenseDate string  `json:"expense_date" binding:"required"`
	ItemId      *string `json:"item_id"`
	Description string  `json:"description" binding:"required"`
	Qty         string  `json:"qty" binding:"required"`
	UnitPrice   string  `json:"unit_price" binding:"required"`
	Amount      string  `json:"amount" binding:"required"`
	LineType    string  `json:"line_type" binding:"required"`
	AccountId   string  `json:"account_id" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	ReceiptLink *string `json:"receipt_link"`
}

type reimbursementValues struct {
	ExpenseDate time.Time
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	LineType    LineType
}

func parseReimbursementValues(expenseDate, qty, unitPrice, amount, lineType string) (*reimbursementValues, error) {
	date, err := utils.ParseDate("expense_date", expenseDate)
	if err != nil {
		return nil, err
	}
	q, err := utils.ParseDecimal(qty)
	if err != nil {
		return nil, err
	}
	p, err := utils.ParseDecimal(unitPrice)
	if err != nil {
		return nil, err
	}
	a, err := utils.ParseDecimal(amount)
	if err != nil {
		return nil, err
	}
	lt, err := ParseRequestLineType(lineType)
	if err != nil {
		return nil, utils.ValidationError("InvalidLineType", err.Error())
	}

	q = utils.RoundQty(q)
	p = utils.RoundMoney(p)
	a = utils.RoundMoney(a)
	if err := utils.ValidateAmount(q, p, a); err != nil {
		return nil, err
	}

	return &reimbursementValues{
		ExpenseDate: date,
		Qty:         q,
		UnitPrice:   p,
		Amount:      a,
		LineType:    lt,
	}, nil
}

func CreateReimbursementRequest(ctx context.Context, input *NewReimbursementRequest) (*ReimbursementRequest, error) {
	values, err := parseReimbursementValues(input.ExpenseDate, input.Qty, input.UnitPrice, input.Amount, input.LineType)
	if err != nil {
		return nil, err
	}

	statusStr := input.Status
	if statusStr == "" {
		statusStr = string(ReimbursementStatusDraft)
	}
	status, err := ParseReimbursementStatus(statusStr)
	if err != nil || status == ReimbursementStatusPosted {
		return nil, utils.ValidationError("InvalidStatus", "status must be Draft or Ready")
	}

	request := ReimbursementRequest{
		ID:          uuid.NewString(),
		ExpenseDate: values.ExpenseDate,
		ItemId:      input.ItemId,
		Description: input.Description,
		Qty:         values.Qty,
		UnitPrice:   values.UnitPrice,
		Amount:      values.Amount,
		LineType:    values.LineType,
		AccountId:   input.AccountId,
		Status:      status,
		Requester:   input.Requester,
		ReceiptLink: input.ReceiptLink,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, utils.InternalError("create reimbursement request", err)
	}
	return &request, nil
}

func UpdateReimbursementRequest(ctx context.Context, id string, input *UpdateReimbursementRequestInput) (*ReimbursementRequest, error) {
	values, err := parseReimbursementValues(input.ExpenseDate, input.Qty, input.UnitPrice, input.Amount, input.LineType)
	if err != nil {
		return nil, err
	}

	status, err := ParseReimbursementStatus(input.Status)
	if err != nil || status == ReimbursementStatusPosted {
		return nil, utils.ValidationError("InvalidStatus", "status must be Draft or Ready")
	}

	request, err := GetReimbursementRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	// Posted rows are immutable.
	if request.Status == ReimbursementStatusPosted {
		return nil, utils.NotFoundError("NotFound", "reimbursement not found or already posted")
	}
	if !request.Status.CanTransition(status) {
		return nil, utils.ValidationError("InvalidStatusTransition",
			"cannot move status from "+string(request.Status)+" to "+string(status))
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(request).
		Where("status <> ?", ReimbursementStatusPosted).
		Updates(map[string]interface{}{
			"expense_date": values.ExpenseDate,
			"item_id":      input.ItemId,
			"description":  input.Description,
			"qty":          values.Qty,
			"unit_price":   values.UnitPrice,
			"amount":       values.Amount,
			"line_type":    values.LineType,
			"account_id":   input.AccountId,
			"status":       status,
			"receipt_link": input.ReceiptLink,
		}).Error
	if err != nil {
		return nil, utils.InternalError("update reimbursement request", err)
	}
	return GetReimbursementRequest(ctx, id)
}

// DeleteReimbursementRequest removes a Draft request. Ready and Posted rows
// are not deletable.
func DeleteReimbursementRequest(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("id = ? AND status = ?", id, ReimbursementStatusDraft).
		Delete(&ReimbursementRequest{})
	if result.Error != nil {
		return utils.InternalError("delete reimbursement request", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("NotFound", "reimbursement not found or not in Draft status")
	}
	return nil
}

func GetReimbursementRequest(ctx context.Context, id string) (*ReimbursementRequest, error) {
	db := config.GetDB()
	var result ReimbursementRequest
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("NotFound", "reimbursement not found")
	}
	if err != nil {
		return nil, utils.InternalError("get reimbursement request", err)
	}
	return &result, nil
}

type ReimbursementFilter struct {
	Status    *ReimbursementStatus
	Requester *string
	BatchId   *string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func GetReimbursementRequests(ctx context.Context, filter ReimbursementFilter) ([]*ReimbursementRequest, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&ReimbursementRequest{})

	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.Requester != nil {
		dbCtx = dbCtx.Where("requester = ?", *filter.Requester)
	}
	if filter.BatchId != nil {
		dbCtx = dbCtx.Where("batch_id = ?", *filter.BatchId)
	}
	if filter.StartDate != nil {
		dbCtx = dbCtx.Where("expense_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		dbCtx = dbCtx.Where("expense_date <= ?", *filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = config.SearchLimit
	}

	var results []*ReimbursementRequest
	err := dbCtx.Order("expense_date DESC, created_at DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&results).Error
	if err != nil {
		return nil, utils.InternalError("list reimbursement requests", err)
	}
	return results, nil
}
