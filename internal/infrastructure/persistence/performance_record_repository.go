package persistence

import (
	"context"
	"errors"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPerformanceRecordRepository implements performance.RecordRepository using GORM
type GormPerformanceRecordRepository struct {
	db *gorm.DB
}

// NewGormPerformanceRecordRepository creates a new GormPerformanceRecordRepository
func NewGormPerformanceRecordRepository(db *gorm.DB) *GormPerformanceRecordRepository {
	return &GormPerformanceRecordRepository{db: db}
}

func (r *GormPerformanceRecordRepository) session(ctx context.Context) *gorm.DB {
	return sessionFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a performance record by its ID
func (r *GormPerformanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Record, error) {
	var model models.PerformanceRecordModel
	if err := r.session(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all performance records matching the filter
func (r *GormPerformanceRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]performance.Record, error) {
	var recordModels []models.PerformanceRecordModel
	query := r.session(ctx).Model(&models.PerformanceRecordModel{})

	for key, value := range filter.Filters {
		switch key {
		case "student_id":
			query = query.Where("student_id = ?", value)
		case "exam_name":
			query = query.Where("exam_name = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, PerformanceSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainPerformanceRecords(recordModels), nil
}

// FindByStudent finds all of a student's exam results, newest first
func (r *GormPerformanceRecordRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]performance.Record, error) {
	var recordModels []models.PerformanceRecordModel
	if err := r.session(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainPerformanceRecords(recordModels), nil
}

// Save creates or updates a performance record
func (r *GormPerformanceRecordRepository) Save(ctx context.Context, record *performance.Record) error {
	model := models.PerformanceRecordModelFromDomain(record)
	return r.session(ctx).Save(model).Error
}

// Delete deletes a performance record
func (r *GormPerformanceRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Delete(&models.PerformanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainPerformanceRecords(recordModels []models.PerformanceRecordModel) []performance.Record {
	records := make([]performance.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records
}

// Ensure GormPerformanceRecordRepository implements performance.RecordRepository
var _ performance.RecordRepository = (*GormPerformanceRecordRepository)(nil)
