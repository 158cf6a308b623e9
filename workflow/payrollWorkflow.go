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

type PostPayrollResult struct {
	PostedCount         int
	TransactionsCreated int
	Transactions        []*models.CashTransaction
}

// PostPayroll posts the given unposted payroll entries as EXPENSE ledger
// entries and marks them posted, all inside one transaction. Already-posted
// ids are ignored; zero eligible entries is an explicit failure.
func PostPayroll(ctx context.Context, ids []string, accountId string) (*PostPayrollResult, error) {
	if len(ids) == 0 {
		return nil, utils.ValidationError("Validation", "ids cannot be empty")
	}

	logger := config.GetLogger()
	db := config.GetDB()

	redisLock := obtainRedisPostingLock(ctx, ledgerLockName)
	defer releaseRedisPostingLock(ctx, redisLock)

	var out *PostPayrollResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx, ledgerLockName); err != nil {
			config.LogError(logger, "payrollWorkflow.go", "PostPayroll", "AcquirePostingLock", ids, err)
			return utils.InternalError("acquire posting lock", err)
		}
		defer ReleasePostingLock(tx, ledgerLockName)

		var fetched []*models.PayrollEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND posted_at IS NULL", utils.UniqueSlice(ids)).
			Find(&fetched).Error; err != nil {
			config.LogError(logger, "payrollWorkflow.go", "PostPayroll", "FetchUnposted", ids, err)
			return utils.InternalError("fetch unposted payroll entries", err)
		}

		entries, err := planPayrollPosting(fetched)
		if err != nil {
			return err
		}

		codes, err := models.NextCodes(tx, models.SequenceKindCashTransaction, len(entries))
		if err != nil {
			config.LogError(logger, "payrollWorkflow.go", "PostPayroll", "NextCodes", ids, err)
			return err
		}

		transactions := make([]*models.CashTransaction, 0, len(entries))
		postedIds := make([]string, 0, len(entries))
		for i, entry := range entries {
			periodRef := utils.FormatDate(entry.PayrollDate)
			if entry.PeriodRef != nil && *entry.PeriodRef != "" {
				periodRef = *entry.PeriodRef
			}

			ledgerEntry := &models.CashTransaction{
				ID:              uuid.NewString(),
				TransactionCode: codes[i],
				TransactionDate: entry.PayrollDate,
				Description:     fmt.Sprintf("Gaji %s %s", entry.EmployeeName, periodRef),
				Quantity:        decimal.NewFromInt(1),
				UnitPrice:       entry.GrossPay,
				Amount:          entry.GrossPay,
				LineType:        models.LineTypeExpense,
				AccountId:       accountId,
				CashAccountId:   entry.CashAccountId,
				OutletId:        entry.OutletId,
			}
			if err := tx.Create(ledgerEntry).Error; err != nil {
				config.LogError(logger, "payrollWorkflow.go", "PostPayroll", "CreateCashTransaction", ledgerEntry.TransactionCode, err)
				return utils.InternalError("create cash transaction", err)
			}
			transactions = append(transactions, ledgerEntry)
			postedIds = append(postedIds, entry.ID)
		}

		now := time.Now()
		if err := tx.Model(&models.PayrollEntry{}).
			Where("id IN ?", postedIds).
			Update("posted_at", now).Error; err != nil {
			config.LogError(logger, "payrollWorkflow.go", "PostPayroll", "MarkPosted", postedIds, err)
			return utils.InternalError("mark payroll entries posted", err)
		}

		out = &PostPayrollResult{
			PostedCount:         len(entries),
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
