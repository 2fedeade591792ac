package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExamRepository implements performance.ExamRepository using GORM
type GormExamRepository struct {
	db *gorm.DB
}

// NewGormExamRepository creates a new GormExamRepository
func NewGormExamRepository(db *gorm.DB) *GormExamRepository {
	return &GormExamRepository{db: db}
}

func (r *GormExamRepository) session(ctx context.Context) *gorm.DB {
	return sessionFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an exam by its ID
func (r *GormExamRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Exam, error) {
	var model models.ExamModel
	if err := r.session(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all exams matching the filter
func (r *GormExamRepository) FindAll(ctx context.Context, filter shared.Filter) ([]performance.Exam, error) {
	var examModels []models.ExamModel
	query := r.session(ctx).Model(&models.ExamModel{})

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "course":
			query = query.Where("course = ?", value)
		case "year":
			query = query.Where("year = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ExamSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&examModels).Error; err != nil {
		return nil, err
	}

	exams := make([]performance.Exam, len(examModels))
	for i, model := range examModels {
		exams[i] = *model.ToDomain()
	}
	return exams, nil
}

// FindByDate finds exams scheduled within the given calendar day
func (r *GormExamRepository) FindByDate(ctx context.Context, date time.Time) ([]performance.Exam, error) {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var examModels []models.ExamModel
	if err := r.session(ctx).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("date ASC").
		Find(&examModels).Error; err != nil {
		return nil, err
	}

	exams := make([]performance.Exam, len(examModels))
	for i, model := range examModels {
		exams[i] = *model.ToDomain()
	}
	return exams, nil
}

// Save creates or updates an exam
func (r *GormExamRepository) Save(ctx context.Context, exam *performance.Exam) error {
	model := models.ExamModelFromDomain(exam)
	return r.session(ctx).Save(model).Error
}

// Delete deletes an exam
func (r *GormExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Delete(&models.ExamModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExamRepository implements performance.ExamRepository
var _ performance.ExamRepository = (*GormExamRepository)(nil)
