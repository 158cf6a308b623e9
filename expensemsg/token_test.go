package expensemsg

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMatchPrice(t *testing.T) {
	cases := []struct {
		token string
		want  string
		ok    bool
	}{
		{"500k", "500000", true},
		{"300rb", "300000", true},
		{"1.5jt", "1500000", true},
		{"2jt", "2000000", true},
		{"22rb", "22000", true},
		{"cabe", "", false},
		{"5kg", "", false},
		{"k", "", false},
		{"rb", "", false},
		{"1.2.3k", "", false},
		{"abck", "", false},
	}

	for _, c := range cases {
		got, ok := matchPrice(c.token)
		if ok != c.ok {
			t.Errorf("matchPrice(%q) ok = %v, want %v", c.token, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		want, _ := decimal.NewFromString(c.want)
		if !got.Equal(want) {
			t.Errorf("matchPrice(%q) = %s, want %s", c.token, got, want)
		}
	}
}

func TestMatchQtyUnit(t *testing.T) {
	cases := []struct {
		token   string
		wantQty string
		unit    string
		ok      bool
	}{
		{"5kg", "5", "kg", true},
		{"2.5l", "2.5", "l", true},
		{"10pcs", "10", "pcs", true},
		{"3ikat", "3", "ikat", true},
		{"kg", "", "", false},
		{"500", "", "", false},
		{"5xyz", "", "", false},
	}

	for _, c := range cases {
		qty, unit, ok := matchQtyUnit(c.token)
		if ok != c.ok {
			t.Errorf("matchQtyUnit(%q) ok = %v, want %v", c.token, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		want, _ := decimal.NewFromString(c.wantQty)
		if !qty.Equal(want) || unit != c.unit {
			t.Errorf("matchQtyUnit(%q) = (%s, %q), want (%s, %q)", c.token, qty, unit, want, c.unit)
		}
	}
}

func TestClassifyTokenCaseInsensitive(t *testing.T) {
	tok := classifyToken("500K")
	if tok.Kind != tokenPrice {
		t.Fatalf("kind = %v, want price", tok.Kind)
	}
	if !tok.Price.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("price = %s, want 500000", tok.Price)
	}

	tok = classifyToken("5KG")
	if tok.Kind != tokenQtyUnit {
		t.Fatalf("kind = %v, want qty+unit", tok.Kind)
	}
	if tok.Unit != "kg" {
		t.Errorf("unit = %q, want kg", tok.Unit)
	}
}
