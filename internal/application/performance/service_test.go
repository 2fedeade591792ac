package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockExamRepository is a mock implementation of performance.ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Exam), args.Error(1)
}

func (m *MockExamRepository) FindAll(ctx context.Context, filter shared.Filter) ([]performance.Exam, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]performance.Exam), args.Error(1)
}

func (m *MockExamRepository) FindByDate(ctx context.Context, date time.Time) ([]performance.Exam, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]performance.Exam), args.Error(1)
}

func (m *MockExamRepository) Save(ctx context.Context, exam *performance.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Verify interface compliance
var _ performance.ExamRepository = (*MockExamRepository)(nil)

// MockRecordRepository is a mock implementation of performance.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Record), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]performance.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]performance.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]performance.Record, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]performance.Record), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *performance.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ performance.RecordRepository = (*MockRecordRepository)(nil)

// =============================================================================
// Service Tests
// =============================================================================

func TestService_CreateExam_Success(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	ctx := context.Background()

	mockExams.On("Save", ctx, mock.AnythingOfType("*performance.Exam")).Return(nil)

	result, err := service.CreateExam(ctx, CreateExamRequest{
		Name:     "Mid-term Physics",
		Date:     "2026-09-15",
		Category: "Junior College",
		Course:   "Science",
		Year:     12,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Mid-term Physics", result.Name)
	assert.Equal(t, "2026-09-15", result.Date)
	assert.Equal(t, "Science", result.Course)
	mockExams.AssertExpectations(t)
}

func TestService_CreateExam_RejectsBadDate(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	result, err := service.CreateExam(context.Background(), CreateExamRequest{
		Name: "Mid-term Physics",
		Date: "15-09-2026",
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	mockExams.AssertNotCalled(t, "Save")
}

func TestService_ListExams_ByDate(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	ctx := context.Background()
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	exam, _ := performance.NewExam("Mid-term Physics", day, "", "", 0)

	mockExams.On("FindByDate", ctx, day).Return([]performance.Exam{*exam}, nil)

	results, err := service.ListExams(ctx, ExamListFilter{Date: "2026-09-15"})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	mockExams.AssertExpectations(t)
}

func TestService_ListExams_DefaultsToDateAscending(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	ctx := context.Background()

	mockExams.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "date" && f.OrderDir == "asc" && f.Page == 1
	})).Return([]performance.Exam{}, nil)

	_, err := service.ListExams(ctx, ExamListFilter{})

	assert.NoError(t, err)
	mockExams.AssertExpectations(t)
}

func TestService_RescheduleExam(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	ctx := context.Background()
	exam, _ := performance.NewExam("Mid-term Physics", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "", "", 0)

	mockExams.On("FindByID", ctx, exam.ID).Return(exam, nil)
	mockExams.On("Save", ctx, exam).Return(nil)

	result, err := service.RescheduleExam(ctx, exam.ID, RescheduleExamRequest{Date: "2026-09-22"})

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-22", result.Date)
	mockExams.AssertExpectations(t)
}

func TestService_RecordResult_Success(t *testing.T) {
	mockRecords := new(MockRecordRepository)
	service := NewService(new(MockExamRepository), mockRecords)

	ctx := context.Background()
	studentID := uuid.New()

	mockRecords.On("Save", ctx, mock.AnythingOfType("*performance.Record")).Return(nil)

	result, err := service.RecordResult(ctx, RecordResultRequest{
		StudentID:  studentID,
		ExamName:   "Mid-term Physics",
		Date:       "2026-09-15",
		Percentage: decimal.NewFromFloat(87.5),
	})

	assert.NoError(t, err)
	assert.Equal(t, studentID, result.StudentID)
	assert.True(t, result.Percentage.Equal(decimal.NewFromFloat(87.5)))
	mockRecords.AssertExpectations(t)
}

func TestService_RecordResult_PercentageOutOfRange(t *testing.T) {
	mockRecords := new(MockRecordRepository)
	service := NewService(new(MockExamRepository), mockRecords)

	result, err := service.RecordResult(context.Background(), RecordResultRequest{
		StudentID:  uuid.New(),
		ExamName:   "Mid-term Physics",
		Percentage: decimal.NewFromInt(120),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	mockRecords.AssertNotCalled(t, "Save")
}

func TestService_ListResultsByStudent(t *testing.T) {
	mockRecords := new(MockRecordRepository)
	service := NewService(new(MockExamRepository), mockRecords)

	ctx := context.Background()
	studentID := uuid.New()
	record, _ := performance.NewRecord(studentID, "Mid-term Physics", time.Now(), decimal.NewFromInt(72))

	mockRecords.On("FindByStudent", ctx, studentID).Return([]performance.Record{*record}, nil)

	results, err := service.ListResultsByStudent(ctx, studentID)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Mid-term Physics", results[0].ExamName)
	mockRecords.AssertExpectations(t)
}

func TestService_DeleteExam_NotFound(t *testing.T) {
	mockExams := new(MockExamRepository)
	service := NewService(mockExams, new(MockRecordRepository))

	ctx := context.Background()
	examID := uuid.New()

	mockExams.On("Delete", ctx, examID).Return(shared.ErrNotFound)

	err := service.DeleteExam(ctx, examID)

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	mockExams.AssertExpectations(t)
}
