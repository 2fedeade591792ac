package performance

import (
	"context"
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles exam scheduling and performance records
type Service struct {
	examRepo   performance.ExamRepository
	recordRepo performance.RecordRepository
}

// NewService creates a new performance Service
func NewService(examRepo performance.ExamRepository, recordRepo performance.RecordRepository) *Service {
	return &Service{
		examRepo:   examRepo,
		recordRepo: recordRepo,
	}
}

// CreateExam schedules a new exam
func (s *Service) CreateExam(ctx context.Context, req CreateExamRequest) (*ExamResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exam date must be in yyyy-mm-dd format")
	}

	exam, err := performance.NewExam(req.Name, date, req.Category, req.Course, req.Year)
	if err != nil {
		return nil, err
	}

	if err := s.examRepo.Save(ctx, exam); err != nil {
		return nil, err
	}

	response := ToExamResponse(exam)
	return &response, nil
}

// GetExam retrieves a single exam
func (s *Service) GetExam(ctx context.Context, examID uuid.UUID) (*ExamResponse, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	response := ToExamResponse(exam)
	return &response, nil
}

// ListExams retrieves exams with filtering and pagination
func (s *Service) ListExams(ctx context.Context, filter ExamListFilter) ([]ExamResponse, error) {
	if filter.Date != "" {
		day, err := time.Parse(dateLayout, filter.Date)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
		}
		exams, err := s.examRepo.FindByDate(ctx, day)
		if err != nil {
			return nil, err
		}
		return ToExamResponses(exams), nil
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Course != "" {
		domainFilter.Filters["course"] = filter.Course
	}

	exams, err := s.examRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToExamResponses(exams), nil
}

// RescheduleExam moves an exam to a new date
func (s *Service) RescheduleExam(ctx context.Context, examID uuid.UUID, req RescheduleExamRequest) (*ExamResponse, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exam date must be in yyyy-mm-dd format")
	}

	if err := exam.Reschedule(date); err != nil {
		return nil, err
	}

	if err := s.examRepo.Save(ctx, exam); err != nil {
		return nil, err
	}

	response := ToExamResponse(exam)
	return &response, nil
}

// DeleteExam removes a scheduled exam
func (s *Service) DeleteExam(ctx context.Context, examID uuid.UUID) error {
	return s.examRepo.Delete(ctx, examID)
}

// RecordResult records one student's exam result
func (s *Service) RecordResult(ctx context.Context, req RecordResultRequest) (*RecordResponse, error) {
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
		}
		date = parsed
	}

	record, err := performance.NewRecord(req.StudentID, req.ExamName, date, req.Percentage)
	if err != nil {
		return nil, err
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// ListResultsByStudent retrieves a student's exam history, newest first
func (s *Service) ListResultsByStudent(ctx context.Context, studentID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.recordRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// DeleteResult removes a performance record
func (s *Service) DeleteResult(ctx context.Context, recordID uuid.UUID) error {
	return s.recordRepo.Delete(ctx, recordID)
}
