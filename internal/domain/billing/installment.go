package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinInstallments is the smallest plan a rebuild can produce
	MinInstallments = 1
	// MaxInstallments is the largest plan a rebuild can produce
	MaxInstallments = 24
)

// DueDateLayout is the calendar-date format used for installment due dates
const DueDateLayout = "2006-01-02"

// Installment is one entry of an installment plan. Amount and due date are
// kept together in a single tuple so the two can never fall out of sync.
// An empty DueDate means the date has not been entered yet.
type Installment struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date,omitempty"`
}

// HasDueDate returns true if a due date has been entered for this installment
func (i Installment) HasDueDate() bool {
	return i.DueDate != ""
}

// DueOn reports whether this installment falls due on the given day
func (i Installment) DueOn(day time.Time) bool {
	if i.DueDate == "" {
		return false
	}
	d, err := time.Parse(DueDateLayout, i.DueDate)
	if err != nil {
		return false
	}
	y1, m1, d1 := d.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InstallmentPlan is the ordered sequence of installments covering a
// student's total fee. It is stored as JSONB on the student row.
type InstallmentPlan []Installment

// ClampInstallmentCount bounds a requested installment count to the valid
// range. Out-of-range values are silently clamped, not rejected.
func ClampInstallmentCount(count int) int {
	if count < MinInstallments {
		return MinInstallments
	}
	if count > MaxInstallments {
		return MaxInstallments
	}
	return count
}

// BuildAmounts produces the equal-split amounts for a plan of the given
// size. The count is clamped to [MinInstallments, MaxInstallments] first.
// No remainder distribution is performed: every entry equals
// totalFee/count, so the sum may differ from totalFee by a fractional
// remainder. That residue is accepted, not corrected.
func BuildAmounts(totalFee decimal.Decimal, count int) []decimal.Decimal {
	n := ClampInstallmentCount(count)
	per := totalFee.Div(decimal.NewFromInt(int64(n)))
	amounts := make([]decimal.Decimal, n)
	for i := range amounts {
		amounts[i] = per
	}
	return amounts
}

// ResizeDates returns the plan's due dates adjusted to newCount entries.
// Truncating drops trailing entries; growing pads with unset dates. Dates
// at surviving indices are never altered.
func (p InstallmentPlan) ResizeDates(newCount int) []string {
	dates := make([]string, newCount)
	for i := 0; i < newCount && i < len(p); i++ {
		dates[i] = p[i].DueDate
	}
	return dates
}

// Rebuild replaces the plan with count equal-split installments of
// totalFee. Amounts are rebuilt destructively: hand-edited amounts are
// lost every time the total fee or the count changes. Due dates, by
// contrast, are resized index-preserving. The asymmetry is deliberate.
func (p InstallmentPlan) Rebuild(totalFee decimal.Decimal, count int) InstallmentPlan {
	amounts := BuildAmounts(totalFee, count)
	dates := p.ResizeDates(len(amounts))

	plan := make(InstallmentPlan, len(amounts))
	for i := range plan {
		plan[i] = Installment{Amount: amounts[i], DueDate: dates[i]}
	}
	return plan
}

// Append adds one zero-amount, unset-date installment at the end of the
// plan. Unlike Rebuild there is no upper bound enforced here.
func (p InstallmentPlan) Append() InstallmentPlan {
	plan := make(InstallmentPlan, len(p), len(p)+1)
	copy(plan, p)
	return append(plan, Installment{Amount: decimal.Zero})
}

// SumAmounts returns the sum of all installment amounts
func (p InstallmentPlan) SumAmounts() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range p {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// DueOn returns the installments of the plan that fall due on the given day
func (p InstallmentPlan) DueOn(day time.Time) []Installment {
	var due []Installment
	for _, inst := range p {
		if inst.DueOn(day) {
			due = append(due, inst)
		}
	}
	return due
}

// Validate checks that every entered due date parses as a calendar date
func (p InstallmentPlan) Validate() error {
	for _, inst := range p {
		if inst.DueDate == "" {
			continue
		}
		if _, err := time.Parse(DueDateLayout, inst.DueDate); err != nil {
			return errors.New("installment due date must be formatted as YYYY-MM-DD")
		}
	}
	return nil
}

// Value implements driver.Valuer for GORM to store the plan as JSONB
func (p InstallmentPlan) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for GORM to read the plan from JSONB
func (p *InstallmentPlan) Scan(value interface{}) error {
	if value == nil {
		*p = InstallmentPlan{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InstallmentPlan: unsupported type")
	}

	if len(bytes) == 0 {
		*p = InstallmentPlan{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}
