package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	studentID := uuid.New()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates payment with snapshot of student name", func(t *testing.T) {
		p, err := NewPayment(studentID, "Aarav Patil", valueobject.NewMoneyINRFromFloat(1500), date, PaymentMethodCash, "June installment")
		require.NoError(t, err)

		assert.Equal(t, studentID, p.StudentID)
		assert.Equal(t, "Aarav Patil", p.StudentName)
		assert.True(t, p.Amount.Equal(valueobject.NewMoneyINRFromFloat(1500).Amount()))
		assert.Equal(t, date, p.PaymentDate)
		assert.Equal(t, PaymentMethodCash, p.Method)
		assert.Equal(t, PaymentStatusPaid, p.Status)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, 1, p.GetVersion())
	})

	t.Run("emits PaymentRecorded event", func(t *testing.T) {
		p, err := NewPayment(studentID, "Aarav Patil", valueobject.NewMoneyINRFromFloat(1500), date, PaymentMethodUPI, "")
		require.NoError(t, err)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "PaymentRecorded", events[0].EventType())
		assert.Equal(t, p.ID, events[0].AggregateID())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(studentID, "Aarav Patil", valueobject.ZeroINR(), date, PaymentMethodCash, "")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPayment(studentID, "Aarav Patil", valueobject.NewMoneyINRFromFloat(-100), date, PaymentMethodCash, "")
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})

	t.Run("rejects missing student", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, "Aarav Patil", valueobject.NewMoneyINRFromFloat(100), date, PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewPayment(studentID, "Aarav Patil", valueobject.NewMoneyINRFromFloat(100), date, PaymentMethod("barter"), "")
		assert.Error(t, err)
	})

	t.Run("zero payment date defaults to now", func(t *testing.T) {
		p, err := NewPayment(studentID, "Aarav Patil", valueobject.NewMoneyINRFromFloat(100), time.Time{}, PaymentMethodCash, "")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), p.PaymentDate, time.Minute)
	})
}

func TestPaymentMethod(t *testing.T) {
	valid := []PaymentMethod{
		PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard,
		PaymentMethodBank, PaymentMethodCheque, PaymentMethodOnline,
	}
	for _, m := range valid {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, PaymentMethod("crypto").IsValid())
	assert.Equal(t, "upi", PaymentMethodUPI.String())
}

func TestPaymentGetAmountMoney(t *testing.T) {
	p, err := NewPayment(uuid.New(), "Aarav Patil", valueobject.NewMoneyINRFromFloat(750.25), time.Now(), PaymentMethodCard, "")
	require.NoError(t, err)

	m := p.GetAmountMoney()
	assert.Equal(t, valueobject.INR, m.Currency())
	assert.True(t, m.Amount().Equal(p.Amount))
}
