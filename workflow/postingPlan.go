package workflow

import (
	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
)

// Posting decisions are made on the rows of the locked FOR UPDATE read, never
// on an earlier unlocked query: a retry that lost the posting race blocks on
// the row locks until the winner commits, then sees the committed outcome
// here.

// planBatchPosting decides what a batch posting may do. Any Posted member
// means a previous posting committed, so a retry observes Conflict rather
// than silently posting zero members. Draft members are skipped, not fatal.
func planBatchPosting(members []*models.ReimbursementRequest) ([]*models.ReimbursementRequest, error) {
	if len(members) == 0 {
		return nil, utils.NotFoundError("NotFound", "batch not found or empty")
	}

	ready := make([]*models.ReimbursementRequest, 0, len(members))
	for _, m := range members {
		if m.Status == models.ReimbursementStatusPosted {
			return nil, utils.ConflictError("Conflict", "batch already posted")
		}
		if m.Status == models.ReimbursementStatusReady {
			ready = append(ready, m)
		}
	}
	return ready, nil
}

// planSalesPosting keeps only still-unposted summaries. Zero eligible rows is
// an explicit failure, not a no-op.
func planSalesPosting(summaries []*models.SalesDailySummary) ([]*models.SalesDailySummary, error) {
	unposted := make([]*models.SalesDailySummary, 0, len(summaries))
	for _, s := range summaries {
		if s.PostedAt == nil {
			unposted = append(unposted, s)
		}
	}
	if len(unposted) == 0 {
		return nil, utils.ValidationError("NoUnpostedRecords", "no unposted sales summaries found")
	}
	return unposted, nil
}

// planPayrollPosting keeps only still-unposted entries.
func planPayrollPosting(entries []*models.PayrollEntry) ([]*models.PayrollEntry, error) {
	unposted := make([]*models.PayrollEntry, 0, len(entries))
	for _, e := range entries {
		if e.PostedAt == nil {
			unposted = append(unposted, e)
		}
	}
	if len(unposted) == 0 {
		return nil, utils.ValidationError("NoUnpostedRecords", "no unposted payroll entries found")
	}
	return unposted, nil
}
