package workflow

import (
	"context"
	"time"

	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ledgerLockName = "ledger"

// AssignReimbursementBatch allocates one new batch code and tags every given
// request with it, regardless of current status. Per-id failures are skipped,
// not fatal; callers must compare the returned count against the requested
// count to detect partial assignment.
func AssignReimbursementBatch(ctx context.Context, ids []string) (string, int, error) {
	if len(ids) == 0 {
		return "", 0, utils.ValidationError("Validation", "ids cannot be empty")
	}

	logger := config.GetLogger()
	db := config.GetDB()

	var batchId string
	assigned := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := models.NextCode(tx, models.SequenceKindReimbursementBatch)
		if err != nil {
			config.LogError(logger, "reimbursementWorkflow.go", "AssignReimbursementBatch", "NextCode", nil, err)
			return err
		}
		batchId = code

		for _, id := range utils.UniqueSlice(ids) {
			result := tx.Model(&models.ReimbursementRequest{}).
				Where("id = ?", id).
				Update("batch_id", batchId)
			if result.Error != nil {
				config.LogError(logger, "reimbursementWorkflow.go", "AssignReimbursementBatch", "UpdateBatchId", id, result.Error)
				continue
			}
			if result.RowsAffected > 0 {
				assigned++
			}
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return batchId, assigned, nil
}

type PostedBatch struct {
	BatchId      string
	Posted       int
	Transactions []*models.CashTransaction
}

// PostReimbursementBatch converts every Ready member of the batch into a
// ledger entry and marks them Posted, all inside one transaction. Draft
// members are left untouched. Re-posting an already posted batch fails with
// Conflict and has no side effects.
func PostReimbursementBatch(ctx context.Context, batchId string, paymentDate time.Time, cashAccountId string) (*PostedBatch, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	redisLock := obtainRedisPostingLock(ctx, ledgerLockName)
	defer releaseRedisPostingLock(ctx, redisLock)

	var out *PostedBatch
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquirePostingLock(tx, ledgerLockName); err != nil {
			config.LogError(logger, "reimbursementWorkflow.go", "PostReimbursementBatch", "AcquirePostingLock", batchId, err)
			return utils.InternalError("acquire posting lock", err)
		}
		defer ReleasePostingLock(tx, ledgerLockName)

		// The FOR UPDATE read is the authoritative idempotency check: a
		// retry blocks here until the winning posting commits, then sees
		// its Posted members and fails with Conflict.
		var members []*models.ReimbursementRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("batch_id = ?", batchId).
			Find(&members).Error; err != nil {
			config.LogError(logger, "reimbursementWorkflow.go", "PostReimbursementBatch", "FetchBatch", batchId, err)
			return utils.InternalError("fetch batch", err)
		}

		ready, err := planBatchPosting(members)
		if err != nil {
			return err
		}

		codes, err := models.NextCodes(tx, models.SequenceKindCashTransaction, len(ready))
		if err != nil {
			config.LogError(logger, "reimbursementWorkflow.go", "PostReimbursementBatch", "NextCodes", batchId, err)
			return err
		}

		transactions := make([]*models.CashTransaction, 0, len(ready))
		for i, req := range ready {
			entry := &models.CashTransaction{
				ID:                   uuid.NewString(),
				TransactionCode:      codes[i],
				TransactionDate:      paymentDate,
				ItemId:               req.ItemId,
				Description:          req.Description,
				Quantity:             req.Qty,
				UnitPrice:            req.UnitPrice,
				Amount:               req.Amount,
				LineType:             req.LineType,
				AccountId:            req.AccountId,
				CashAccountId:        cashAccountId,
				ReimbursementBatchId: &batchId,
			}
			if err := tx.Create(entry).Error; err != nil {
				config.LogError(logger, "reimbursementWorkflow.go", "PostReimbursementBatch", "CreateCashTransaction", entry.TransactionCode, err)
				return utils.InternalError("create cash transaction", err)
			}
			transactions = append(transactions, entry)
		}

		if len(ready) > 0 {
			now := time.Now()
			if err := tx.Model(&models.ReimbursementRequest{}).
				Where("batch_id = ? AND status = ?", batchId, models.ReimbursementStatusReady).
				Updates(map[string]interface{}{
					"status":    models.ReimbursementStatusPosted,
					"posted_at": now,
				}).Error; err != nil {
				config.LogError(logger, "reimbursementWorkflow.go", "PostReimbursementBatch", "MarkPosted", batchId, err)
				return utils.InternalError("mark batch posted", err)
			}
		}

		out = &PostedBatch{
			BatchId:      batchId,
			Posted:       len(ready),
			Transactions: transactions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
