package billing

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/reporting"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
)

const reportCachePrefix = "reports:"

// PaymentService records and lists fee payments. Recording a payment
// writes the payment entry and the student's paid fee atomically.
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	studentRepo student.Repository
	txManager   shared.TransactionManager
	reportCache reporting.Cache // optional, may be nil
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	studentRepo student.Repository,
	txManager shared.TransactionManager,
	reportCache reporting.Cache,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		txManager:   txManager,
		reportCache: reportCache,
	}
}

// RecordPayment applies a received amount to a student's ledger. The
// payment insert and the paid-fee update commit in one transaction; the
// student write is version checked so two concurrent receipts cannot both
// apply against the same ledger state.
func (s *PaymentService) RecordPayment(ctx context.Context, studentID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		parsed, err := time.Parse(billing.DueDateLayout, *req.PaymentDate)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment date must be in yyyy-mm-dd format")
		}
		paymentDate = parsed
	}

	payment, err := st.RecordPayment(
		valueobject.NewMoneyINR(req.Amount),
		paymentDate,
		billing.PaymentMethod(req.Method),
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		return s.studentRepo.SaveWithLock(txCtx, st)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	ledger := st.Ledger()
	return &RecordPaymentResponse{
		Payment:   ToPaymentResponse(payment),
		TotalFee:  ledger.TotalFee,
		PaidFee:   ledger.PaidFee,
		DueAmount: ledger.DueAmount,
		FeeStatus: ledger.FeeStatus.String(),
	}, nil
}

// GetByID retrieves a single payment entry
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter, from, to, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	var payments []billing.Payment
	if from != nil && to != nil {
		payments, err = s.paymentRepo.FindByDateRange(ctx, *from, *to, domainFilter)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentResponses(payments), total, nil
}

// ListByStudent retrieves a student's payment history
func (s *PaymentService) ListByStudent(ctx context.Context, studentID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, error) {
	domainFilter, _, _, err := s.buildFilter(filter)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByStudent(ctx, studentID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToPaymentResponses(payments), nil
}

// Recent returns the most recent payments across all students
func (s *PaymentService) Recent(ctx context.Context, limit int) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

func (s *PaymentService) buildFilter(filter PaymentListFilter) (shared.Filter, *time.Time, *time.Time, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "payment_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}

	if filter.StudentID != "" {
		studentID, err := uuid.Parse(filter.StudentID)
		if err != nil {
			return shared.Filter{}, nil, nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid student ID")
		}
		domainFilter.Filters["student_id"] = studentID
	}
	if filter.Method != "" {
		domainFilter.Filters["payment_method"] = filter.Method
	}

	var from, to *time.Time
	if filter.From != "" && filter.To != "" {
		fromDate, err := time.Parse(billing.DueDateLayout, filter.From)
		if err != nil {
			return shared.Filter{}, nil, nil, shared.NewDomainError("VALIDATION_ERROR", "From date must be in yyyy-mm-dd format")
		}
		toDate, err := time.Parse(billing.DueDateLayout, filter.To)
		if err != nil {
			return shared.Filter{}, nil, nil, shared.NewDomainError("VALIDATION_ERROR", "To date must be in yyyy-mm-dd format")
		}
		from, to = &fromDate, &toDate
	}

	return domainFilter, from, to, nil
}

func (s *PaymentService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	_ = s.reportCache.DeleteByPrefix(ctx, reportCachePrefix)
}
