package expensemsg

import (
	"testing"
	"time"
)

func TestParseDateLine(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		line string
		want time.Time
		ok   bool
	}{
		{"20 jan", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), true},
		{"10 oktober", time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC), true},
		{"1 Mei", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"5 peb", time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), true},
		{"17 agt", time.Date(2023, time.August, 17, 0, 0, 0, 0, time.UTC), true},
		{"31 feb", time.Time{}, false},
		{"0 jan", time.Time{}, false},
		{"32 jan", time.Time{}, false},
		{"20 xyz", time.Time{}, false},
		{"jan 20", time.Time{}, false},
		{"20", time.Time{}, false},
		{"20 jan 2024", time.Time{}, false},
	}

	for _, c := range cases {
		got, ok := parseDateLine(c.line, now)
		if ok != c.ok {
			t.Errorf("parseDateLine(%q) ok = %v, want %v", c.line, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("parseDateLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestParseDateLineYearDecrement(t *testing.T) {
	// On January 5th, a "28 des" report belongs to the previous December.
	now := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)

	got, ok := parseDateLine("28 des", now)
	if !ok {
		t.Fatal("parseDateLine failed")
	}
	want := time.Date(2023, time.December, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}

	// A date within the next 30 days keeps the current year.
	got, ok = parseDateLine("20 jan", now)
	if !ok {
		t.Fatal("parseDateLine failed")
	}
	want = time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
}
