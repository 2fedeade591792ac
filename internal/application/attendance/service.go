package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/classdesk/backend/internal/domain/attendance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles attendance marking and queries
type Service struct {
	attendanceRepo attendance.Repository
}

// NewService creates a new attendance Service
func NewService(attendanceRepo attendance.Repository) *Service {
	return &Service{attendanceRepo: attendanceRepo}
}

// BulkMark marks attendance for a roster on one date. Existing marks for
// the same student/date/subject are overwritten, so submitting the same
// sheet twice is safe.
func (s *Service) BulkMark(ctx context.Context, req BulkMarkRequest) (*BulkMarkResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
	}

	result := &BulkMarkResponse{}
	for _, entry := range req.Entries {
		existing, err := s.attendanceRepo.FindForDay(ctx, entry.StudentID, date, req.Subject)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		if existing != nil {
			if err := existing.Remark(attendance.Status(entry.Status)); err != nil {
				return nil, err
			}
			if err := s.attendanceRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
		} else {
			record, err := attendance.NewRecord(entry.StudentID, date, req.Subject, attendance.Status(entry.Status))
			if err != nil {
				return nil, err
			}
			if err := s.attendanceRepo.Save(ctx, record); err != nil {
				return nil, err
			}
			result.Marked++
		}
		result.Processed++
	}

	return result, nil
}

// List retrieves attendance records with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]RecordResponse, error) {
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
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid student ID")
		}
		domainFilter.Filters["student_id"] = studentID
	}
	if filter.Subject != "" {
		domainFilter.Filters["subject"] = filter.Subject
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	records, err := s.attendanceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

// ListByStudent retrieves one student's attendance over a date range.
// An empty range means the student's full history.
func (s *Service) ListByStudent(ctx context.Context, studentID uuid.UUID, from, to string) ([]RecordResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.FindByStudent(ctx, studentID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

// ListByDate retrieves all marks of one calendar day
func (s *Service) ListByDate(ctx context.Context, date string) ([]RecordResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
	}

	records, err := s.attendanceRepo.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

// Delete removes an attendance record
func (s *Service) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.attendanceRepo.Delete(ctx, recordID)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	var fromDate, toDate time.Time
	var err error
	if from != "" {
		fromDate, err = time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "From date must be in yyyy-mm-dd format")
		}
	}
	if to != "" {
		toDate, err = time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "To date must be in yyyy-mm-dd format")
		}
	}
	return fromDate, toDate, nil
}
