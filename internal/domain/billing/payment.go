package billing

import (
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodBank   PaymentMethod = "bank_transfer"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard,
		PaymentMethodBank, PaymentMethodCheque, PaymentMethodOnline:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the status of a payment entry
type PaymentStatus string

const (
	// PaymentStatusPaid is the only status recorded in the normal flow;
	// payment entries are append-only and never move to another state.
	PaymentStatusPaid PaymentStatus = "Paid"
)

// Payment is an immutable ledger entry: one amount received from one
// student on one date. It carries a denormalized snapshot of the student's
// name so lists render without a join. Payments are never mutated or
// deleted in the normal flow.
type Payment struct {
	shared.BaseAggregateRoot
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"payment_method"`
	Description string          `json:"description,omitempty"`
	Status      PaymentStatus   `json:"status"`
}

// NewPayment creates a new payment entry for a student.
// Returns InvalidAmount for non-positive amounts.
func NewPayment(
	studentID uuid.UUID,
	studentName string,
	amount valueobject.Money,
	paymentDate time.Time,
	method PaymentMethod,
	description string,
) (*Payment, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if method != "" && !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		StudentName:       studentName,
		Amount:            amount.Amount(),
		PaymentDate:       paymentDate,
		Method:            method,
		Description:       description,
		Status:            PaymentStatusPaid,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// GetAmountMoney returns the amount as Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
