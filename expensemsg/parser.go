// Package expensemsg parses free-text expense reports (WhatsApp-style
// messages) into draft expense items. It is a best-effort, line-oriented
// recovery parser: a malformed item line degrades to a warning, not a
// failure, so one typo does not lose the rest of the report.
package expensemsg

import (
	"strings"
	"time"

	"github.com/dapurnusa/resto_backend/utils"
	"github.com/shopspring/decimal"
)

// Item is one parsed draft expense line. Ephemeral: it exists only until the
// caller turns it into a persisted reimbursement request.
type Item struct {
	RawText     string          `json:"raw_text"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Result struct {
	ExpenseDate time.Time `json:"expense_date"`
	Items       []Item    `json:"items"`
	Warnings    []string  `json:"warnings"`
}

// Parse converts a raw multi-line message into items plus warnings. The
// first non-empty line must be a date ("20 jan"); every further non-empty
// line is an item candidate. Hard failures: no valid date line
// (MissingOrInvalidDate), or zero parsable items (NoItemsParsed).
func Parse(text string, now time.Time) (*Result, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, utils.ValidationError("MissingOrInvalidDate",
			"message must start with a date line like \"20 jan\"")
	}

	expenseDate, ok := parseDateLine(lines[0], now)
	if !ok {
		return nil, utils.ValidationError("MissingOrInvalidDate",
			"first line must be a date like \"20 jan\", got \""+lines[0]+"\"")
	}

	result := &Result{
		ExpenseDate: expenseDate,
		Items:       make([]Item, 0, len(lines)-1),
		Warnings:    make([]string, 0),
	}

	for _, line := range lines[1:] {
		item, ok := parseItemLine(line)
		if !ok {
			result.Warnings = append(result.Warnings, "skipped: "+line)
			continue
		}
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 {
		return nil, utils.ValidationError("NoItemsParsed",
			"no expense items could be parsed from the message")
	}
	return result, nil
}

// parseItemLine classifies each token and assembles one item. The first
// price token and the first quantity+unit token win; later matches of either
// kind fall back to description text. A line without a price is not an item.
func parseItemLine(line string) (Item, bool) {
	var (
		price    decimal.Decimal
		hasPrice bool
		qty      decimal.Decimal
		unit     string
		hasQty   bool
	)

	desc := make([]string, 0)
	for _, raw := range strings.Fields(line) {
		tok := classifyToken(raw)
		switch tok.Kind {
		case tokenPrice:
			if hasPrice {
				desc = append(desc, tok.Raw)
				continue
			}
			price = tok.Price
			hasPrice = true
		case tokenQtyUnit:
			if hasQty {
				desc = append(desc, tok.Raw)
				continue
			}
			qty = tok.Qty
			unit = tok.Unit
			hasQty = true
		default:
			desc = append(desc, tok.Raw)
		}
	}

	if !hasPrice {
		return Item{}, false
	}
	if !hasQty {
		qty = decimal.NewFromInt(1)
		unit = ""
	}

	return Item{
		RawText:     line,
		Description: strings.Join(desc, " "),
		Qty:         qty,
		Unit:        unit,
		TotalPrice:  price,
	}, true
}
