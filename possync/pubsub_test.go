package possync

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderFromEvent(t *testing.T) {
	order, err := orderFromEvent(OrderEvent{
		OrderNumber:    "INV-001",
		OutletId:       "outlet-1",
		OrderType:      "DINE_IN",
		PaymentMethod:  "Cash",
		OrderDate:      "2024-03-15",
		GrossAmount:    "150000",
		DiscountAmount: "5000",
		Status:         "COMPLETED",
	})
	if err != nil {
		t.Fatalf("orderFromEvent returned error: %v", err)
	}
	if order.OrderNumber != "INV-001" || order.OutletId != "outlet-1" {
		t.Errorf("order keys = %q/%q", order.OrderNumber, order.OutletId)
	}
	if !order.GrossAmount.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("gross = %s, want 150000", order.GrossAmount)
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("discount = %s, want 5000", order.DiscountAmount)
	}
	if order.ID == "" {
		t.Error("order id not assigned")
	}
}

func TestOrderFromEventDefaultsDiscount(t *testing.T) {
	order, err := orderFromEvent(OrderEvent{
		OrderNumber: "INV-002",
		OutletId:    "outlet-1",
		OrderDate:   "2024-03-15",
		GrossAmount: "20000",
	})
	if err != nil {
		t.Fatalf("orderFromEvent returned error: %v", err)
	}
	if !order.DiscountAmount.IsZero() {
		t.Errorf("discount = %s, want 0", order.DiscountAmount)
	}
}

func TestOrderFromEventInvalid(t *testing.T) {
	cases := []struct {
		name  string
		event OrderEvent
	}{
		{"missing order number", OrderEvent{OutletId: "o", OrderDate: "2024-03-15", GrossAmount: "1"}},
		{"missing outlet", OrderEvent{OrderNumber: "n", OrderDate: "2024-03-15", GrossAmount: "1"}},
		{"bad date", OrderEvent{OrderNumber: "n", OutletId: "o", OrderDate: "15/03/2024", GrossAmount: "1"}},
		{"bad amount", OrderEvent{OrderNumber: "n", OutletId: "o", OrderDate: "2024-03-15", GrossAmount: "abc"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := orderFromEvent(c.event); err == nil {
				t.Error("expected error")
			}
		})
	}
}
