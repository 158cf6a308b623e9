package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ReimbursementStatus is the one-way Draft -> Ready -> Posted lifecycle.
type ReimbursementStatus string

const (
	ReimbursementStatusDraft  ReimbursementStatus = "Draft"
	ReimbursementStatusReady  ReimbursementStatus = "Ready"
	ReimbursementStatusPosted ReimbursementStatus = "Posted"
)

func ParseReimbursementStatus(s string) (ReimbursementStatus, error) {
	switch s {
	case "Draft":
		return ReimbursementStatusDraft, nil
	case "Ready":
		return ReimbursementStatusReady, nil
	case "Posted":
		return ReimbursementStatusPosted, nil
	default:
		return "", fmt.Errorf("invalid reimbursement status %q", s)
	}
}

var statusRank = map[ReimbursementStatus]int{
	ReimbursementStatusDraft:  0,
	ReimbursementStatusReady:  1,
	ReimbursementStatusPosted: 2,
}

// CanTransition reports whether moving from s to next is legal.
// Transitions never regress; Posted is terminal.
func (s ReimbursementStatus) CanTransition(next ReimbursementStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from && s != ReimbursementStatusPosted
}

func (s ReimbursementStatus) Value() (driver.Value, error) {
	if _, ok := statusRank[s]; !ok {
		return nil, fmt.Errorf("invalid reimbursement status %q", string(s))
	}
	return string(s), nil
}

func (s *ReimbursementStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParseReimbursementStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// LineType is the bookkeeping classification of a ledger entry.
type LineType string

const (
	LineTypeInventory LineType = "INVENTORY"
	LineTypeExpense   LineType = "EXPENSE"
	LineTypeSales     LineType = "SALES"
)

func ParseLineType(s string) (LineType, error) {
	switch s {
	case "INVENTORY":
		return LineTypeInventory, nil
	case "EXPENSE":
		return LineTypeExpense, nil
	case "SALES":
		return LineTypeSales, nil
	default:
		return "", fmt.Errorf("invalid line type %q", s)
	}
}

// ParseRequestLineType restricts to the types callers may submit.
// SALES lines are only ever created by the sales posting workflow.
func ParseRequestLineType(s string) (LineType, error) {
	switch s {
	case "INVENTORY":
		return LineTypeInventory, nil
	case "EXPENSE":
		return LineTypeExpense, nil
	default:
		return "", fmt.Errorf("line type must be INVENTORY or EXPENSE, got %q", s)
	}
}

func (t LineType) Value() (driver.Value, error) {
	if _, err := ParseLineType(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *LineType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParseLineType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SalesSource marks how a daily summary entered the system.
type SalesSource string

const (
	SalesSourcePos    SalesSource = "pos"
	SalesSourceManual SalesSource = "manual"
)

func (s SalesSource) Value() (driver.Value, error) {
	switch s {
	case SalesSourcePos, SalesSourceManual:
		return string(s), nil
	}
	return nil, fmt.Errorf("invalid sales source %q", string(s))
}

func (s *SalesSource) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	switch str {
	case "pos":
		*s = SalesSourcePos
	case "manual":
		*s = SalesSourceManual
	default:
		return fmt.Errorf("invalid sales source %q", str)
	}
	return nil
}

// PayrollPeriodType classifies a payroll entry's pay period.
type PayrollPeriodType string

const (
	PayrollPeriodDaily   PayrollPeriodType = "Daily"
	PayrollPeriodWeekly  PayrollPeriodType = "Weekly"
	PayrollPeriodMonthly PayrollPeriodType = "Monthly"
)

func ParsePayrollPeriodType(s string) (PayrollPeriodType, error) {
	switch s {
	case "Daily":
		return PayrollPeriodDaily, nil
	case "Weekly":
		return PayrollPeriodWeekly, nil
	case "Monthly":
		return PayrollPeriodMonthly, nil
	default:
		return "", fmt.Errorf("period type must be Daily, Weekly or Monthly, got %q", s)
	}
}

func (t PayrollPeriodType) Value() (driver.Value, error) {
	if _, err := ParsePayrollPeriodType(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *PayrollPeriodType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	parsed, err := ParsePayrollPeriodType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", errors.New("enum column must be a string")
	}
}
