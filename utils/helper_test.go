package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1500.50", "1500.50", true},
		{"  1500.50 ", "1500.50", true},
		{"20,000", "20000", true},
		{"1,500,000.25", "1500000.25", true},
		{"0", "0", true},
		{"-12.5", "-12.5", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"12.3.4", "", false},
	}

	for _, c := range cases {
		got, err := ParseDecimal(c.in)
		if (err == nil) != c.ok {
			t.Errorf("ParseDecimal(%q) err = %v, want ok=%v", c.in, err, c.ok)
			continue
		}
		if c.ok && !got.Equal(dec(t, c.want)) {
			t.Errorf("ParseDecimal(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestRoundMoneyHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"10", "10"},
	}

	for _, c := range cases {
		if got := RoundMoney(dec(t, c.in)); !got.Equal(dec(t, c.want)) {
			t.Errorf("RoundMoney(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestMoneyAndQtyStrings(t *testing.T) {
	if got := MoneyString(dec(t, "500000")); got != "500000.00" {
		t.Errorf("MoneyString = %q, want 500000.00", got)
	}
	if got := QtyString(dec(t, "5")); got != "5.0000" {
		t.Errorf("QtyString = %q, want 5.0000", got)
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		qty, price, amount string
		ok                 bool
	}{
		{"5", "100000", "500000", true},
		{"2.5", "3", "7.5", true},
		// Rounded at 2 decimals: 3 x 0.335 = 1.005 -> 1.01.
		{"3", "0.335", "1.01", true},
		{"3", "0.335", "1.00", false},
		{"5", "100000", "500001", false},
		{"1", "10", "0", false},
	}

	for _, c := range cases {
		err := ValidateAmount(dec(t, c.qty), dec(t, c.price), dec(t, c.amount))
		if (err == nil) != c.ok {
			t.Errorf("ValidateAmount(%s, %s, %s) err = %v, want ok=%v", c.qty, c.price, c.amount, err, c.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("sales_date", "2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if FormatDate(d) != "2024-03-15" {
		t.Errorf("round-trip = %q", FormatDate(d))
	}

	for _, bad := range []string{"15-03-2024", "2024/03/15", "2024-13-01", ""} {
		if _, err := ParseDate("sales_date", bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("UniqueSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniqueSlice = %v, want %v", got, want)
		}
	}
}
