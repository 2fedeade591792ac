package models

import (
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the GORM model for payment entries.
// Rows are append-only; nothing in the application updates or deletes them.
type PaymentModel struct {
	AggregateModel
	StudentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	StudentName string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentDate time.Time       `gorm:"not null;index"`
	Method      string          `gorm:"column:payment_method"`
	Description string          ``
	Status      string          `gorm:"not null;default:'Paid'"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	p := &billing.Payment{
		StudentID:   m.StudentID,
		StudentName: m.StudentName,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      billing.PaymentMethod(m.Method),
		Description: m.Description,
		Status:      billing.PaymentStatus(m.Status),
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// PaymentModelFromDomain converts domain Payment to PaymentModel
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		StudentID:   p.StudentID,
		StudentName: p.StudentName,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method.String(),
		Description: p.Description,
		Status:      string(p.Status),
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
