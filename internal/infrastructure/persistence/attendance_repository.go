package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/classdesk/backend/internal/domain/attendance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements attendance.Repository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) session(ctx context.Context) *gorm.DB {
	return sessionFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an attendance record by its ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
	if err := r.session(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all attendance records matching the filter
func (r *GormAttendanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]attendance.Record, error) {
	var recordModels []models.AttendanceRecordModel
	query := r.session(ctx).Model(&models.AttendanceRecordModel{})

	for key, value := range filter.Filters {
		switch key {
		case "student_id":
			query = query.Where("student_id = ?", value)
		case "subject":
			query = query.Where("subject = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, AttendanceSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainAttendance(recordModels), nil
}

// FindByStudent finds a student's records within a date range (inclusive)
func (r *GormAttendanceRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]attendance.Record, error) {
	var recordModels []models.AttendanceRecordModel
	query := r.session(ctx).Where("student_id = ?", studentID)
	// Zero bounds mean an open-ended range
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	if err := query.
		Order("date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainAttendance(recordModels), nil
}

// FindByDate finds all records for a date
func (r *GormAttendanceRepository) FindByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	var recordModels []models.AttendanceRecordModel
	if err := r.session(ctx).
		Where("date = ?", date).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainAttendance(recordModels), nil
}

// FindForDay returns the existing record for a student/date/subject
// combination, or ErrNotFound.
func (r *GormAttendanceRepository) FindForDay(ctx context.Context, studentID uuid.UUID, date time.Time, subject string) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
	if err := r.session(ctx).
		Where("student_id = ? AND date = ? AND subject = ?", studentID, date, subject).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountPresent counts a student's present days within a date range
func (r *GormAttendanceRepository) CountPresent(ctx context.Context, studentID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	query := r.session(ctx).
		Model(&models.AttendanceRecordModel{}).
		Where("student_id = ? AND status = ?", studentID, attendance.StatusPresent)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an attendance record
func (r *GormAttendanceRepository) Save(ctx context.Context, record *attendance.Record) error {
	model := models.AttendanceRecordModelFromDomain(record)
	return r.session(ctx).Save(model).Error
}

// Delete deletes an attendance record
func (r *GormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Delete(&models.AttendanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainAttendance(recordModels []models.AttendanceRecordModel) []attendance.Record {
	records := make([]attendance.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records
}

// Ensure GormAttendanceRepository implements attendance.Repository
var _ attendance.Repository = (*GormAttendanceRepository)(nil)
