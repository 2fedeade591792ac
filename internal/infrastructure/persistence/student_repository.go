package persistence

import (
	"context"
	"errors"

	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/classdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentRepository implements student.Repository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) session(ctx context.Context) *gorm.DB {
	return sessionFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a student by its ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	var model models.StudentModel
	if err := r.session(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a student by phone number
func (r *GormStudentRepository) FindByPhone(ctx context.Context, phone string) (*student.Student, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var model models.StudentModel
	if err := r.session(ctx).
		Where("phone = ?", phone).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all students matching the filter
func (r *GormStudentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]student.Student, error) {
	var studentModels []models.StudentModel
	query := r.applyFilter(r.session(ctx).Model(&models.StudentModel{}), filter)

	if err := query.Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]student.Student, len(studentModels))
	for i, model := range studentModels {
		students[i] = *model.ToDomain()
	}
	return students, nil
}

// FindByCategory finds students in a category
func (r *GormStudentRepository) FindByCategory(ctx context.Context, category student.Category, filter shared.Filter) ([]student.Student, error) {
	var studentModels []models.StudentModel
	query := r.applyFilter(
		r.session(ctx).Model(&models.StudentModel{}).
			Where("category = ?", category),
		filter,
	)

	if err := query.Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]student.Student, len(studentModels))
	for i, model := range studentModels {
		students[i] = *model.ToDomain()
	}
	return students, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, s *student.Student) error {
	model := models.StudentModelFromDomain(s)
	return r.session(ctx).Save(model).Error
}

// SaveWithLock saves a student with optimistic locking (version check).
// Returns ErrConcurrencyConflict if the stored version has moved on.
func (r *GormStudentRepository) SaveWithLock(ctx context.Context, s *student.Student) error {
	model := models.StudentModelFromDomain(s)
	result := r.session(ctx).
		Model(model).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a student
func (r *GormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Delete(&models.StudentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts students matching the filter
func (r *GormStudentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.session(ctx).Model(&models.StudentModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStudentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, StudentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStudentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "course":
			query = query.Where("course = ?", value)
		case "year":
			query = query.Where("year = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "fee_pending":
			if value == true {
				query = query.Where("paid_fee < total_fee")
			} else {
				query = query.Where("paid_fee >= total_fee")
			}
		}
	}

	return query
}

// Ensure GormStudentRepository implements student.Repository
var _ student.Repository = (*GormStudentRepository)(nil)
