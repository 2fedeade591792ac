package models

import (
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExamModel is the GORM model for scheduled exams
type ExamModel struct {
	AggregateModel
	Name     string    `gorm:"not null;index"`
	Date     time.Time `gorm:"not null;index"`
	Category string    `gorm:"index"`
	Course   string    ``
	Year     int       `gorm:"not null;default:0"`
}

// TableName specifies the table name for ExamModel
func (ExamModel) TableName() string {
	return "exams"
}

// ToDomain converts ExamModel to domain Exam
func (m *ExamModel) ToDomain() *performance.Exam {
	e := &performance.Exam{
		Name:     m.Name,
		Date:     m.Date,
		Category: m.Category,
		Course:   m.Course,
		Year:     m.Year,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// ExamModelFromDomain converts domain Exam to ExamModel
func ExamModelFromDomain(e *performance.Exam) *ExamModel {
	m := &ExamModel{
		Name:     e.Name,
		Date:     e.Date,
		Category: e.Category,
		Course:   e.Course,
		Year:     e.Year,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// PerformanceRecordModel is the GORM model for exam results
type PerformanceRecordModel struct {
	AggregateModel
	StudentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExamName   string          `gorm:"not null"`
	Date       time.Time       `gorm:"not null;index"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName specifies the table name for PerformanceRecordModel
func (PerformanceRecordModel) TableName() string {
	return "performance_records"
}

// ToDomain converts PerformanceRecordModel to domain Record
func (m *PerformanceRecordModel) ToDomain() *performance.Record {
	r := &performance.Record{
		StudentID:  m.StudentID,
		ExamName:   m.ExamName,
		Date:       m.Date,
		Percentage: m.Percentage,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// PerformanceRecordModelFromDomain converts domain Record to PerformanceRecordModel
func PerformanceRecordModelFromDomain(r *performance.Record) *PerformanceRecordModel {
	m := &PerformanceRecordModel{
		StudentID:  r.StudentID,
		ExamName:   r.ExamName,
		Date:       r.Date,
		Percentage: r.Percentage,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
