package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/dapurnusa/resto_backend/models"
	"github.com/dapurnusa/resto_backend/utils"
)

func batchMember(id string, status models.ReimbursementStatus) *models.ReimbursementRequest {
	return &models.ReimbursementRequest{ID: id, Status: status}
}

func TestPlanBatchPosting(t *testing.T) {
	members := []*models.ReimbursementRequest{
		batchMember("a", models.ReimbursementStatusReady),
		batchMember("b", models.ReimbursementStatusDraft),
		batchMember("c", models.ReimbursementStatusReady),
	}

	ready, err := planBatchPosting(members)
	if err != nil {
		t.Fatalf("planBatchPosting returned error: %v", err)
	}
	if len(ready) != 2 {
		t.Fatalf("ready = %d members, want 2", len(ready))
	}
	// Draft members stay behind, only Ready ones post.
	if ready[0].ID != "a" || ready[1].ID != "c" {
		t.Errorf("ready ids = %q, %q, want a, c", ready[0].ID, ready[1].ID)
	}
}

func TestPlanBatchPostingAllDraft(t *testing.T) {
	members := []*models.ReimbursementRequest{
		batchMember("a", models.ReimbursementStatusDraft),
		batchMember("b", models.ReimbursementStatusDraft),
	}

	ready, err := planBatchPosting(members)
	if err != nil {
		t.Fatalf("planBatchPosting returned error: %v", err)
	}
	if len(ready) != 0 {
		t.Errorf("ready = %d members, want 0", len(ready))
	}
}

func TestPlanBatchPostingEmpty(t *testing.T) {
	_, err := planBatchPosting(nil)
	if utils.KindOf(err) != utils.ErrorKindNotFound {
		t.Errorf("kind = %q, want %q", utils.KindOf(err), utils.ErrorKindNotFound)
	}
}

// A posting retry re-reads the batch after the winning transaction committed
// and must fail with Conflict instead of posting again.
func TestPlanBatchPostingAlreadyPosted(t *testing.T) {
	members := []*models.ReimbursementRequest{
		batchMember("a", models.ReimbursementStatusReady),
		batchMember("b", models.ReimbursementStatusDraft),
	}

	if _, err := planBatchPosting(members); err != nil {
		t.Fatalf("first planBatchPosting returned error: %v", err)
	}

	// The winner commits: Ready members become Posted.
	members[0].Status = models.ReimbursementStatusPosted

	_, err := planBatchPosting(members)
	if err == nil {
		t.Fatal("expected error for already posted batch")
	}
	if utils.KindOf(err) != utils.ErrorKindConflict {
		t.Errorf("kind = %q, want %q", utils.KindOf(err), utils.ErrorKindConflict)
	}
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != "Conflict" {
		t.Errorf("error = %v, want code Conflict", err)
	}
}

func TestPlanSalesPosting(t *testing.T) {
	now := time.Now()
	summaries := []*models.SalesDailySummary{
		{ID: "s1", PostedAt: &now},
		{ID: "s2"},
		{ID: "s3"},
	}

	unposted, err := planSalesPosting(summaries)
	if err != nil {
		t.Fatalf("planSalesPosting returned error: %v", err)
	}
	if len(unposted) != 2 {
		t.Fatalf("unposted = %d summaries, want 2", len(unposted))
	}
	if unposted[0].ID != "s2" || unposted[1].ID != "s3" {
		t.Errorf("unposted ids = %q, %q, want s2, s3", unposted[0].ID, unposted[1].ID)
	}
}

func TestPlanSalesPostingAllPosted(t *testing.T) {
	now := time.Now()
	cases := [][]*models.SalesDailySummary{
		nil,
		{{ID: "s1", PostedAt: &now}},
	}

	for _, summaries := range cases {
		_, err := planSalesPosting(summaries)
		if err == nil {
			t.Fatal("expected error when nothing is unposted")
		}
		if utils.KindOf(err) != utils.ErrorKindValidation {
			t.Errorf("kind = %q, want %q", utils.KindOf(err), utils.ErrorKindValidation)
		}
		var appErr *utils.AppError
		if !errors.As(err, &appErr) || appErr.Code != "NoUnpostedRecords" {
			t.Errorf("error = %v, want code NoUnpostedRecords", err)
		}
	}
}

func TestPlanPayrollPosting(t *testing.T) {
	now := time.Now()
	entries := []*models.PayrollEntry{
		{ID: "p1"},
		{ID: "p2", PostedAt: &now},
	}

	unposted, err := planPayrollPosting(entries)
	if err != nil {
		t.Fatalf("planPayrollPosting returned error: %v", err)
	}
	if len(unposted) != 1 || unposted[0].ID != "p1" {
		t.Errorf("unposted = %+v, want just p1", unposted)
	}

	_, err = planPayrollPosting([]*models.PayrollEntry{{ID: "p2", PostedAt: &now}})
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NoUnpostedRecords" {
		t.Errorf("error = %v, want code NoUnpostedRecords", err)
	}
}
