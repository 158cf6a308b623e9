package expensemsg

import (
	"strings"

	"github.com/shopspring/decimal"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenPrice
	tokenQtyUnit
)

// token is one classified whitespace-separated word of an item line.
type token struct {
	Kind  tokenKind
	Raw   string
	Price decimal.Decimal
	Qty   decimal.Decimal
	Unit  string
}

// Price shorthand multipliers, checked longest suffix first so "jt" wins
// over a trailing "t" and "rb" over "b".
var priceSuffixes = []struct {
	Suffix     string
	Multiplier decimal.Decimal
}{
	{"jt", decimal.New(1, 6)},
	{"rb", decimal.New(1, 3)},
	{"k", decimal.New(1, 3)},
}

// Known quantity units from WhatsApp-style market shorthand.
var knownUnits = map[string]struct{}{
	"kg":     {},
	"g":      {},
	"gr":     {},
	"ons":    {},
	"l":      {},
	"ltr":    {},
	"liter":  {},
	"ml":     {},
	"pcs":    {},
	"pc":     {},
	"bks":    {},
	"pack":   {},
	"pak":    {},
	"box":    {},
	"dus":    {},
	"ikat":   {},
	"lbr":    {},
	"btl":    {},
	"buah":   {},
	"biji":   {},
	"ekor":   {},
	"sisir":  {},
	"karung": {},
	"papan":  {},
	"tray":   {},
}

// classifyToken tags one token as a price shorthand, a quantity+unit, or
// free text. Classification is case-insensitive.
func classifyToken(raw string) token {
	lower := strings.ToLower(raw)

	if price, ok := matchPrice(lower); ok {
		return token{Kind: tokenPrice, Raw: raw, Price: price}
	}
	if qty, unit, ok := matchQtyUnit(lower); ok {
		return token{Kind: tokenQtyUnit, Raw: raw, Qty: qty, Unit: unit}
	}
	return token{Kind: tokenText, Raw: raw}
}

// matchPrice resolves shorthand like "500k", "300rb", "1.5jt". The prefix
// must be a plain number; "cabe" and "5kg" are not prices.
func matchPrice(lower string) (decimal.Decimal, bool) {
	for _, s := range priceSuffixes {
		if !strings.HasSuffix(lower, s.Suffix) {
			continue
		}
		prefix := strings.TrimSuffix(lower, s.Suffix)
		if prefix == "" || !isNumeric(prefix) {
			continue
		}
		n, err := decimal.NewFromString(prefix)
		if err != nil {
			continue
		}
		return n.Mul(s.Multiplier), true
	}
	return decimal.Zero, false
}

// matchQtyUnit resolves tokens like "5kg" or "2.5l": a leading numeric run
// followed by a known unit suffix.
func matchQtyUnit(lower string) (decimal.Decimal, string, bool) {
	split := len(lower)
	for i, r := range lower {
		if (r >= '0' && r <= '9') || r == '.' {
			continue
		}
		split = i
		break
	}
	if split == 0 || split == len(lower) {
		return decimal.Zero, "", false
	}

	unit := lower[split:]
	if _, ok := knownUnits[unit]; !ok {
		return decimal.Zero, "", false
	}

	qty, err := decimal.NewFromString(lower[:split])
	if err != nil {
		return decimal.Zero, "", false
	}
	return qty, unit, true
}

func isNumeric(s string) bool {
	dots := 0
	for _, r := range s {
		if r == '.' {
			dots++
			if dots > 1 {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
