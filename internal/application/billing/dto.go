package billing

import (
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest represents a request to record a received payment
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *string         `json:"payment_date"`
	Method      string          `json:"payment_method" binding:"omitempty,oneof=cash upi card bank_transfer cheque online"`
	Description string          `json:"description" binding:"max=500"`
}

// PaymentResponse represents a payment ledger entry in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"payment_method"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordPaymentResponse pairs the new payment entry with the student's
// refreshed ledger so the caller can render both without a second read.
type RecordPaymentResponse struct {
	Payment   PaymentResponse `json:"payment"`
	TotalFee  decimal.Decimal `json:"total_fee"`
	PaidFee   decimal.Decimal `json:"paid_fee"`
	DueAmount decimal.Decimal `json:"due_amount"`
	FeeStatus string          `json:"fee_status"`
}

// PaymentListFilter represents filter options for payment list
type PaymentListFilter struct {
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	Method    string `form:"payment_method" binding:"omitempty,oneof=cash upi card bank_transfer cheque online"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		StudentID:   p.StudentID,
		StudentName: p.StudentName,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method.String(),
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

// ToPaymentResponses converts domain Payments to responses
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
