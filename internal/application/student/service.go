package student

import (
	"context"
	"errors"
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/reporting"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportCachePrefix is the key prefix under which reports are cached.
// Every mutation invalidates it so cached summaries never serve stale fees.
const reportCachePrefix = "reports:"

// StudentService handles student enrollment and fee plan operations
type StudentService struct {
	studentRepo student.Repository
	reportCache reporting.Cache // optional, may be nil
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo student.Repository, reportCache reporting.Cache) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		reportCache: reportCache,
	}
}

// Create enrolls a new student
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error) {
	// Check if phone already exists (if provided)
	if req.Phone != "" {
		existing, err := s.studentRepo.FindByPhone(ctx, req.Phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Student with this phone already exists")
		}
	}

	totalFee := decimal.Zero
	if req.TotalFee != nil {
		totalFee = *req.TotalFee
	}

	st, err := student.NewStudent(
		req.Name,
		req.Email,
		req.Phone,
		student.Category(req.Category),
		req.Course,
		req.Year,
		valueobject.NewMoneyINR(totalFee),
	)
	if err != nil {
		return nil, err
	}

	if req.Semester > 0 {
		st.Semester = req.Semester
	}

	if req.Batch != "" || req.SchoolName != "" || req.Address != "" || req.ParentContact != "" {
		st.SetBackground(req.Batch, req.SchoolName, req.Address, req.ParentContact)
	}

	if req.Birthday != nil {
		birthday, err := parseDate(*req.Birthday)
		if err != nil {
			return nil, err
		}
		st.SetBirthday(birthday)
	}

	if req.EnrollmentDate != nil || req.EnrollmentYearStart > 0 {
		var enrolled *time.Time
		if req.EnrollmentDate != nil {
			enrolled, err = parseDate(*req.EnrollmentDate)
			if err != nil {
				return nil, err
			}
		}
		st.SetEnrollment(enrolled, req.EnrollmentYearStart, req.EnrollmentYearEnd)
	}

	if len(req.SubjectsEnrolled) > 0 {
		st.SetSubjects(req.SubjectsEnrolled)
	}

	if req.InstallmentCount > 0 {
		st.RebuildInstallments(req.InstallmentCount)
	}

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	response := ToStudentResponse(st)
	return &response, nil
}

// GetByID retrieves a student with the derived ledger
func (s *StudentService) GetByID(ctx context.Context, studentID uuid.UUID) (*StudentResponse, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	response := ToStudentResponse(st)
	return &response, nil
}

// GetLedger returns the derived fee ledger for a student
func (s *StudentService) GetLedger(ctx context.Context, studentID uuid.UUID) (*LedgerResponse, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	response := ToLedgerResponse(st.Ledger())
	return &response, nil
}

// List retrieves students with filtering and pagination
func (s *StudentService) List(ctx context.Context, filter StudentListFilter) ([]StudentListResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Course != "" {
		domainFilter.Filters["course"] = filter.Course
	}
	if filter.Year > 0 {
		domainFilter.Filters["year"] = filter.Year
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.FeePending != nil {
		domainFilter.Filters["fee_pending"] = *filter.FeePending
	}

	students, err := s.studentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.studentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStudentListResponses(students), total, nil
}

// Update updates a student's profile and fee terms
func (s *StudentService) Update(ctx context.Context, studentID uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// Classification fields are validated together, so fill gaps from the
	// current state before applying.
	if req.Name != nil || req.Email != nil || req.Phone != nil ||
		req.Category != nil || req.Course != nil || req.Year != nil || req.Semester != nil {
		name := st.Name
		email := st.Email
		phone := st.Phone
		category := st.Category
		course := st.Course
		year := st.Year
		semester := st.Semester

		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			if *req.Phone != "" && *req.Phone != st.Phone {
				existing, err := s.studentRepo.FindByPhone(ctx, *req.Phone)
				if err != nil && !errors.Is(err, shared.ErrNotFound) {
					return nil, err
				}
				if existing != nil {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Student with this phone already exists")
				}
			}
			phone = *req.Phone
		}
		if req.Category != nil {
			category = student.Category(*req.Category)
		}
		if req.Course != nil {
			course = *req.Course
		}
		if req.Year != nil {
			year = *req.Year
		}
		if req.Semester != nil {
			semester = *req.Semester
		}

		if err := st.UpdateProfile(name, email, phone, category, course, year, semester); err != nil {
			return nil, err
		}
	}

	if req.Batch != nil || req.SchoolName != nil || req.Address != nil || req.ParentContact != nil {
		batch := st.Batch
		schoolName := st.SchoolName
		address := st.Address
		parentContact := st.ParentContact
		if req.Batch != nil {
			batch = *req.Batch
		}
		if req.SchoolName != nil {
			schoolName = *req.SchoolName
		}
		if req.Address != nil {
			address = *req.Address
		}
		if req.ParentContact != nil {
			parentContact = *req.ParentContact
		}
		st.SetBackground(batch, schoolName, address, parentContact)
	}

	if req.TotalFee != nil {
		if err := st.ReviseTotalFee(valueobject.NewMoneyINR(*req.TotalFee)); err != nil {
			return nil, err
		}
	}

	if req.Birthday != nil {
		birthday, err := parseDate(*req.Birthday)
		if err != nil {
			return nil, err
		}
		st.SetBirthday(birthday)
	}

	if req.EnrollmentDate != nil || req.EnrollmentYearStart != nil || req.EnrollmentYearEnd != nil {
		enrolled := st.EnrollmentDate
		yearStart := st.EnrollmentYearStart
		yearEnd := st.EnrollmentYearEnd
		if req.EnrollmentDate != nil {
			enrolled, err = parseDate(*req.EnrollmentDate)
			if err != nil {
				return nil, err
			}
		}
		if req.EnrollmentYearStart != nil {
			yearStart = *req.EnrollmentYearStart
		}
		if req.EnrollmentYearEnd != nil {
			yearEnd = *req.EnrollmentYearEnd
		}
		st.SetEnrollment(enrolled, yearStart, yearEnd)
	}

	if req.SubjectsEnrolled != nil {
		st.SetSubjects(req.SubjectsEnrolled)
	}

	if req.Status != nil {
		switch student.Status(*req.Status) {
		case student.StatusActive:
			st.Activate()
		case student.StatusInactive:
			st.Deactivate()
		}
	}

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	response := ToStudentResponse(st)
	return &response, nil
}

// Delete removes a student
func (s *StudentService) Delete(ctx context.Context, studentID uuid.UUID) error {
	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// GetInstallments returns the student's installment plan
func (s *StudentService) GetInstallments(ctx context.Context, studentID uuid.UUID) ([]InstallmentDTO, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ToInstallmentDTOs(st.Installments), nil
}

// RebuildInstallments replaces the plan with equal-split installments of
// the current total fee. Counts outside the allowed range are clamped.
func (s *StudentService) RebuildInstallments(ctx context.Context, studentID uuid.UUID, req RebuildInstallmentsRequest) ([]InstallmentDTO, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	st.RebuildInstallments(req.Count)

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return ToInstallmentDTOs(st.Installments), nil
}

// AppendInstallment adds one zero-amount installment to the plan
func (s *StudentService) AppendInstallment(ctx context.Context, studentID uuid.UUID) ([]InstallmentDTO, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	st.AppendInstallment()

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return ToInstallmentDTOs(st.Installments), nil
}

// ReplaceInstallments swaps in a hand-edited plan
func (s *StudentService) ReplaceInstallments(ctx context.Context, studentID uuid.UUID, req ReplaceInstallmentsRequest) ([]InstallmentDTO, error) {
	st, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := st.ReplaceInstallments(toDomainPlan(req.Installments)); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return ToInstallmentDTOs(st.Installments), nil
}

// invalidateReports drops cached report payloads after a mutation.
// Best effort: a cache failure never fails the write.
func (s *StudentService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	_ = s.reportCache.DeleteByPrefix(ctx, reportCachePrefix)
}

// parseDate parses a yyyy-mm-dd date string
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(billing.DueDateLayout, value)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
	}
	return &parsed, nil
}
