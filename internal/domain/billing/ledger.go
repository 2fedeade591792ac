package billing

import (
	"github.com/shopspring/decimal"
)

// FeeStatus represents the derived billing status of a student's fee ledger
type FeeStatus string

const (
	FeeStatusUnpaid  FeeStatus = "Unpaid"  // Nothing paid yet
	FeeStatusPartial FeeStatus = "Partial" // 0 < due < total
	FeeStatusPaid    FeeStatus = "Paid"    // paid >= total
)

// IsValid checks if the status is a valid FeeStatus
func (s FeeStatus) IsValid() bool {
	switch s {
	case FeeStatusUnpaid, FeeStatusPartial, FeeStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of FeeStatus
func (s FeeStatus) String() string {
	return string(s)
}

// IsSettled returns true if no further payments are expected
func (s FeeStatus) IsSettled() bool {
	return s == FeeStatusPaid
}

// Ledger is the derived due-amount/status view over a student's total and
// paid fee. It is never persisted; both fields are recomputed from the
// source amounts on every read.
type Ledger struct {
	TotalFee  decimal.Decimal `json:"total_fee"`
	PaidFee   decimal.Decimal `json:"paid_fee"`
	DueAmount decimal.Decimal `json:"due_amount"`
	FeeStatus FeeStatus       `json:"fee_status"`
}

// ComputeLedger derives the due amount and fee status from the stored total
// and paid fee. Pure function; a nil-equivalent (zero) paidFee yields Unpaid.
// Overpayment produces a negative due amount which is reported as-is.
//
// The status classification is evaluated in precedence order so boundary
// values resolve deterministically:
//  1. due == total (nothing paid)  -> Unpaid
//  2. paid >= total                -> Paid
//  3. 0 < due < total              -> Partial
//  4. fallback (total == 0, paid == 0) -> Unpaid
func ComputeLedger(totalFee, paidFee decimal.Decimal) Ledger {
	due := totalFee.Sub(paidFee)

	var status FeeStatus
	switch {
	case due.Equal(totalFee):
		status = FeeStatusUnpaid
	case paidFee.GreaterThanOrEqual(totalFee):
		status = FeeStatusPaid
	case due.GreaterThan(decimal.Zero) && due.LessThan(totalFee):
		status = FeeStatusPartial
	default:
		status = FeeStatusUnpaid
	}

	return Ledger{
		TotalFee:  totalFee,
		PaidFee:   paidFee,
		DueAmount: due,
		FeeStatus: status,
	}
}

// ComputeLedgerNullable treats an absent paid fee as zero. Rows migrated
// from the legacy store can carry NULL paid_fee.
func ComputeLedgerNullable(totalFee decimal.Decimal, paidFee *decimal.Decimal) Ledger {
	if paidFee == nil {
		return ComputeLedger(totalFee, decimal.Zero)
	}
	return ComputeLedger(totalFee, *paidFee)
}

// PaidPercentage returns how much of the total fee has been collected, in
// percent rounded to two decimals. A zero total counts as fully collected.
func (l Ledger) PaidPercentage() decimal.Decimal {
	if l.TotalFee.IsZero() {
		return decimal.NewFromInt(100)
	}
	return l.PaidFee.Div(l.TotalFee).Mul(decimal.NewFromInt(100)).Round(2)
}
