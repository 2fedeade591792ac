package student

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockStudentRepository is a mock implementation of student.Repository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByPhone(ctx context.Context, phone string) (*student.Student, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]student.Student, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByCategory(ctx context.Context, category student.Category, filter shared.Filter) ([]student.Student, error) {
	args := m.Called(ctx, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) SaveWithLock(ctx context.Context, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Verify interface compliance
var _ student.Repository = (*MockStudentRepository)(nil)

// MockReportCache is a mock implementation of reporting.Cache
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockReportCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockReportCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockReportCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

func newTestStudentID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestStudent() *student.Student {
	s, _ := student.NewStudent(
		"Asha Patel",
		"asha@example.com",
		"9820012345",
		student.CategorySchool,
		"SSC",
		10,
		valueobject.NewMoneyINRFromFloat(24000),
	)
	return s
}

// =============================================================================
// StudentService Tests
// =============================================================================

func TestStudentService_Create_Success(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	totalFee := decimal.NewFromFloat(24000)
	req := CreateStudentRequest{
		Name:             "Asha Patel",
		Phone:            "9820012345",
		Category:         "School",
		Course:           "SSC",
		Year:             10,
		TotalFee:         &totalFee,
		InstallmentCount: 4,
	}

	mockRepo.On("FindByPhone", ctx, req.Phone).Return(nil, shared.ErrNotFound)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Asha Patel", result.Name)
	assert.Equal(t, "School", result.Category)
	assert.Equal(t, "active", result.Status)
	assert.True(t, result.TotalFee.Equal(totalFee))
	assert.True(t, result.DueAmount.Equal(totalFee))
	assert.Equal(t, "Unpaid", result.FeeStatus)
	assert.Len(t, result.Installments, 4)
	assert.True(t, result.Installments[0].Amount.Equal(decimal.NewFromInt(6000)))
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Create_DuplicatePhone(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	req := CreateStudentRequest{
		Name:     "Asha Patel",
		Phone:    "9820012345",
		Category: "School",
		Course:   "SSC",
	}

	mockRepo.On("FindByPhone", ctx, req.Phone).Return(createTestStudent(), nil)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Create_CourseNotInCategory(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	req := CreateStudentRequest{
		Name:     "Asha Patel",
		Category: "School",
		Course:   "NEET",
	}

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestStudentService_Create_ParsesBirthday(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	birthday := "2009-03-14"
	req := CreateStudentRequest{
		Name:     "Asha Patel",
		Category: "School",
		Course:   "SSC",
		Birthday: &birthday,
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result.Birthday)
	assert.Equal(t, 2009, result.Birthday.Year())
	assert.Equal(t, time.March, result.Birthday.Month())
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Create_AppliesBackground(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	req := CreateStudentRequest{
		Name:          "Asha Patel",
		Category:      "School",
		Course:        "SSC",
		Batch:         "Evening",
		SchoolName:    "Don Bosco High School",
		Address:       "45 FC Road, Pune",
		ParentContact: "9822001122",
	}

	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "Evening", result.Batch)
	assert.Equal(t, "Don Bosco High School", result.SchoolName)
	assert.Equal(t, "45 FC Road, Pune", result.Address)
	assert.Equal(t, "9822001122", result.ParentContact)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Create_RejectsBadDate(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	birthday := "14/03/2009"
	req := CreateStudentRequest{
		Name:     "Asha Patel",
		Category: "School",
		Course:   "SSC",
		Birthday: &birthday,
	}

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestStudentService_GetByID_Success(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)

	result, err := service.GetByID(ctx, st.ID)

	assert.NoError(t, err)
	assert.Equal(t, st.ID, result.ID)
	assert.Equal(t, "Unpaid", result.FeeStatus)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	studentID := newTestStudentID()

	mockRepo.On("FindByID", ctx, studentID).Return(nil, shared.ErrNotFound)

	result, err := service.GetByID(ctx, studentID)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	mockRepo.AssertExpectations(t)
}

func TestStudentService_GetLedger_DerivesFromAmounts(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	st.PaidFee = decimal.NewFromInt(9000)

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)

	result, err := service.GetLedger(ctx, st.ID)

	assert.NoError(t, err)
	assert.True(t, result.DueAmount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "Partial", result.FeeStatus)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_List_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()

	mockRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]student.Student{*st}, nil)
	mockRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.List(ctx, StudentListFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, results, 1)
	assert.Equal(t, "Asha Patel", results[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_List_BuildsFilters(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	pending := true

	mockRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["category"] == "School" &&
			f.Filters["fee_pending"] == true &&
			f.Search == "asha"
	})).Return([]student.Student{}, nil)
	mockRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	_, _, err := service.List(ctx, StudentListFilter{
		Search:     "asha",
		Category:   "School",
		FeePending: &pending,
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Update_ReviseTotalFee(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	st.RebuildInstallments(4)
	newFee := decimal.NewFromInt(30000)

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Update(ctx, st.ID, UpdateStudentRequest{TotalFee: &newFee})

	assert.NoError(t, err)
	assert.True(t, result.TotalFee.Equal(newFee))
	// Plan keeps its size but re-splits over the new total
	assert.Len(t, result.Installments, 4)
	assert.True(t, result.Installments[0].Amount.Equal(decimal.NewFromInt(7500)))
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Update_DuplicatePhoneRejected(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	other := createTestStudent()
	newPhone := "9820099999"

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("FindByPhone", ctx, newPhone).Return(other, nil)

	result, err := service.Update(ctx, st.ID, UpdateStudentRequest{Phone: &newPhone})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestStudentService_Update_Deactivate(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	status := "inactive"

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Update(ctx, st.ID, UpdateStudentRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Update_BackgroundPartial(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	st.SetBackground("Morning", "Don Bosco High School", "45 FC Road, Pune", "9822001122")
	batch := "Evening"

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.Update(ctx, st.ID, UpdateStudentRequest{Batch: &batch})

	assert.NoError(t, err)
	assert.Equal(t, "Evening", result.Batch)
	// Untouched background fields keep their current values
	assert.Equal(t, "Don Bosco High School", result.SchoolName)
	assert.Equal(t, "45 FC Road, Pune", result.Address)
	assert.Equal(t, "9822001122", result.ParentContact)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Delete_InvalidatesReports(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockCache := new(MockReportCache)
	service := NewStudentService(mockRepo, mockCache)

	ctx := context.Background()
	studentID := newTestStudentID()

	mockRepo.On("Delete", ctx, studentID).Return(nil)
	mockCache.On("DeleteByPrefix", ctx, reportCachePrefix).Return(nil)

	err := service.Delete(ctx, studentID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	studentID := newTestStudentID()

	mockRepo.On("Delete", ctx, studentID).Return(shared.ErrNotFound)

	err := service.Delete(ctx, studentID)

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	mockRepo.AssertExpectations(t)
}

func TestStudentService_RebuildInstallments_ClampsCount(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.RebuildInstallments(ctx, st.ID, RebuildInstallmentsRequest{Count: 50})

	assert.NoError(t, err)
	assert.Len(t, result, 24)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_AppendInstallment_AddsZeroAmount(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()
	st.RebuildInstallments(2)

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*student.Student")).Return(nil)

	result, err := service.AppendInstallment(ctx, st.ID)

	assert.NoError(t, err)
	assert.Len(t, result, 3)
	assert.True(t, result[2].Amount.IsZero())
	assert.Empty(t, result[2].DueDate)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_ReplaceInstallments_RejectsBadDate(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	service := NewStudentService(mockRepo, nil)

	ctx := context.Background()
	st := createTestStudent()

	mockRepo.On("FindByID", ctx, st.ID).Return(st, nil)

	result, err := service.ReplaceInstallments(ctx, st.ID, ReplaceInstallmentsRequest{
		Installments: []InstallmentDTO{
			{Amount: decimal.NewFromInt(12000), DueDate: "07-05-2026"},
		},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "Save")
}

// =============================================================================
// Catalog Tests
// =============================================================================

func TestStudentService_Categories_DisplayOrder(t *testing.T) {
	service := NewStudentService(new(MockStudentRepository), nil)

	categories := service.Categories()

	assert.Equal(t, []string{"School", "Junior College", "Diploma", "Entrance Exams"}, categories)
}

func TestStudentService_CoursesFor(t *testing.T) {
	service := NewStudentService(new(MockStudentRepository), nil)

	courses, err := service.CoursesFor("Entrance Exams")

	assert.NoError(t, err)
	assert.Equal(t, []string{"NEET", "JEE", "MHTCET", "Boards"}, courses)
}

func TestStudentService_CoursesFor_UnknownCategory(t *testing.T) {
	service := NewStudentService(new(MockStudentRepository), nil)

	courses, err := service.CoursesFor("Kindergarten")

	assert.Error(t, err)
	assert.Nil(t, courses)
}

func TestStudentService_CategoryChange_ResetsSelections(t *testing.T) {
	service := NewStudentService(new(MockStudentRepository), nil)

	change, err := service.CategoryChange("Junior College")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Science", "Commerce", "Arts"}, change.CourseOptions)
	assert.Equal(t, []int{11, 12}, change.YearOptions)
	assert.Equal(t, "All", change.ResetCourse)
	assert.Equal(t, 0, change.ResetYear)
}
