package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dapurnusa/resto_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionSequence is the authoritative cursor behind ledger and batch
// codes. One row per kind, incremented under a row lock inside the same
// transaction that writes the coded rows, so codes are unique and strictly
// increasing under concurrent posting.
type TransactionSequence struct {
	Kind      string    `gorm:"primaryKey;size:50" json:"kind"`
	Prefix    string    `gorm:"size:10;not null" json:"prefix"`
	Width     int       `gorm:"not null" json:"width"`
	Cursor    int64     `gorm:"not null;default:0" json:"cursor"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	SequenceKindCashTransaction    = "cash_transaction"
	SequenceKindReimbursementBatch = "reimbursement_batch"
)

var sequenceDefaults = map[string]struct {
	Prefix string
	Width  int
}{
	SequenceKindCashTransaction:    {Prefix: "PCS", Width: 6},
	SequenceKindReimbursementBatch: {Prefix: "RMB", Width: 3},
}

func FormatSequenceCode(prefix string, width int, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

// ParseSequenceSuffix extracts the numeric suffix of a code like "PCS000123".
// A malformed suffix is a data-integrity error, not retried.
func ParseSequenceSuffix(prefix string, code string) (int64, error) {
	if !strings.HasPrefix(code, prefix) {
		return 0, utils.InternalError("malformed sequence code "+code, nil)
	}
	n, err := strconv.ParseInt(code[len(prefix):], 10, 64)
	if err != nil {
		return 0, utils.InternalError("malformed sequence code "+code, err)
	}
	return n, nil
}

// NextCode allocates the next code of the given kind inside tx.
func NextCode(tx *gorm.DB, kind string) (string, error) {
	codes, err := NextCodes(tx, kind, 1)
	if err != nil {
		return "", err
	}
	return codes[0], nil
}

// NextCodes reserves count consecutive codes inside tx. The sequence row is
// locked FOR UPDATE, so concurrent postings serialize here and no code is
// ever handed out twice.
func NextCodes(tx *gorm.DB, kind string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	var seq TransactionSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("kind = ?", kind).
		Take(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq, err = seedSequence(tx, kind)
	}
	if err != nil {
		return nil, utils.InternalError("load sequence "+kind, err)
	}

	codes := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		codes = append(codes, FormatSequenceCode(seq.Prefix, seq.Width, seq.Cursor+int64(i)))
	}

	if err := tx.Model(&TransactionSequence{}).
		Where("kind = ?", kind).
		Update("cursor", seq.Cursor+int64(count)).Error; err != nil {
		return nil, utils.InternalError("advance sequence "+kind, err)
	}
	return codes, nil
}

// seedSequence initializes the cursor from the current maximum persisted code
// so the sequence picks up where legacy data left off. The insert holds the
// row lock for the rest of the transaction.
func seedSequence(tx *gorm.DB, kind string) (TransactionSequence, error) {
	def, ok := sequenceDefaults[kind]
	if !ok {
		return TransactionSequence{}, fmt.Errorf("unknown sequence kind %q", kind)
	}

	codes, err := persistedCodes(tx, kind, def.Prefix)
	if err != nil {
		return TransactionSequence{}, err
	}

	cursor, err := maxSequenceSuffix(def.Prefix, codes)
	if err != nil {
		return TransactionSequence{}, err
	}

	seq := TransactionSequence{
		Kind:   kind,
		Prefix: def.Prefix,
		Width:  def.Width,
		Cursor: cursor,
	}
	if err := tx.Create(&seq).Error; err != nil {
		return TransactionSequence{}, err
	}
	return seq, nil
}

func persistedCodes(tx *gorm.DB, kind string, prefix string) ([]string, error) {
	var codes []string
	switch kind {
	case SequenceKindCashTransaction:
		err := tx.Model(&CashTransaction{}).
			Where("transaction_code LIKE ?", prefix+"%").
			Pluck("transaction_code", &codes).Error
		return codes, err
	case SequenceKindReimbursementBatch:
		err := tx.Model(&ReimbursementRequest{}).
			Where("batch_id LIKE ?", prefix+"%").
			Pluck("batch_id", &codes).Error
		return codes, err
	}
	return nil, fmt.Errorf("unknown sequence kind %q", kind)
}

// maxSequenceSuffix finds the highest numeric suffix among persisted codes.
// String MAX would rank "PCS999999" above "PCS1000000" once codes outgrow the
// padded width, seeding the cursor too low and reissuing taken codes.
func maxSequenceSuffix(prefix string, codes []string) (int64, error) {
	var max int64
	for _, code := range codes {
		n, err := ParseSequenceSuffix(prefix, code)
		if err != nil {
			return 0, err
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}
