package expensemsg

import (
	"errors"
	"testing"
	"time"

	"github.com/dapurnusa/resto_backend/utils"
	"github.com/shopspring/decimal"
)

var parseNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestParseSingleItem(t *testing.T) {
	res, err := Parse("20 jan\ncabe merah tanjung 5kg 500k", parseNow)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	wantDate := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	if !res.ExpenseDate.Equal(wantDate) {
		t.Errorf("expense date = %v, want %v", res.ExpenseDate, wantDate)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(res.Items))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}

	item := res.Items[0]
	if item.Description != "cabe merah tanjung" {
		t.Errorf("description = %q, want %q", item.Description, "cabe merah tanjung")
	}
	if !item.Qty.Equal(decimal.NewFromInt(5)) {
		t.Errorf("qty = %s, want 5", item.Qty)
	}
	if item.Unit != "kg" {
		t.Errorf("unit = %q, want %q", item.Unit, "kg")
	}
	if !item.TotalPrice.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("total price = %s, want 500000", item.TotalPrice)
	}
	if item.RawText != "cabe merah tanjung 5kg 500k" {
		t.Errorf("raw text = %q", item.RawText)
	}
}

func TestParsePriceShorthand(t *testing.T) {
	cases := []struct {
		token string
		want  int64
	}{
		{"500k", 500000},
		{"300rb", 300000},
		{"25rb", 25000},
		{"2jt", 2000000},
	}

	for _, c := range cases {
		res, err := Parse("1 mar\nitem "+c.token, parseNow)
		if err != nil {
			t.Fatalf("%s: Parse returned error: %v", c.token, err)
		}
		if !res.Items[0].TotalPrice.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s: price = %s, want %d", c.token, res.Items[0].TotalPrice, c.want)
		}
	}

	res, err := Parse("1 mar\nitem 1.5jt", parseNow)
	if err != nil {
		t.Fatalf("1.5jt: Parse returned error: %v", err)
	}
	if !res.Items[0].TotalPrice.Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("1.5jt: price = %s, want 1500000", res.Items[0].TotalPrice)
	}
}

func TestParseMissingQtyDefaultsToOne(t *testing.T) {
	res, err := Parse("1 mar\ngas elpiji 22rb", parseNow)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	item := res.Items[0]
	if !item.Qty.Equal(decimal.NewFromInt(1)) {
		t.Errorf("qty = %s, want 1", item.Qty)
	}
	if item.Unit != "" {
		t.Errorf("unit = %q, want empty", item.Unit)
	}
	if item.Description != "gas elpiji" {
		t.Errorf("description = %q", item.Description)
	}
}

func TestParseSkipsUnparsableLines(t *testing.T) {
	text := "5 feb\nberas 10kg 120rb\ncatatan tanpa harga\nminyak 2l 36rb"
	res, err := Parse(text, parseNow)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", res.Warnings)
	}
	if res.Warnings[0] != "skipped: catatan tanpa harga" {
		t.Errorf("warning = %q", res.Warnings[0])
	}
}

func TestParseDuplicateMatchesFallBackToDescription(t *testing.T) {
	// Second price and second qty tokens must land in the description.
	res, err := Parse("1 mar\ntelur 2kg 50rb 3kg 10rb", parseNow)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	item := res.Items[0]
	if !item.TotalPrice.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("price = %s, want 50000", item.TotalPrice)
	}
	if !item.Qty.Equal(decimal.NewFromInt(2)) {
		t.Errorf("qty = %s, want 2", item.Qty)
	}
	if item.Description != "telur 3kg 10rb" {
		t.Errorf("description = %q, want %q", item.Description, "telur 3kg 10rb")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		code string
	}{
		{"empty message", "", "MissingOrInvalidDate"},
		{"no date line", "cabe 5kg 50rb", "MissingOrInvalidDate"},
		{"invalid day", "32 jan\ncabe 5kg 50rb", "MissingOrInvalidDate"},
		{"day overflow", "31 feb\ncabe 5kg 50rb", "MissingOrInvalidDate"},
		{"no items", "20 jan", "NoItemsParsed"},
		{"only unparsable lines", "20 jan\ncatatan saja", "NoItemsParsed"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.text, parseNow)
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr *utils.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("error type = %T", err)
			}
			if appErr.Code != c.code {
				t.Errorf("code = %q, want %q", appErr.Code, c.code)
			}
			if appErr.Kind != utils.ErrorKindValidation {
				t.Errorf("kind = %q, want %q", appErr.Kind, utils.ErrorKindValidation)
			}
		})
	}
}
