package models

import (
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/shopspring/decimal"
)

// StudentModel is the GORM model for students.
// The installment plan and subject list are stored as JSONB columns owned
// exclusively by this row. Due amount and fee status are not persisted;
// the domain derives them on every read.
type StudentModel struct {
	AggregateModel
	Name                string                  `gorm:"not null;index"`
	Email               string                  `gorm:"index"`
	Phone               string                  `gorm:"index"`
	Category            string                  `gorm:"not null;index"`
	Course              string                  `gorm:"not null;index"`
	Year                int                     `gorm:"not null;default:0"`
	Semester            int                     `gorm:"not null;default:0"`
	Batch               string                  ``
	SchoolName          string                  ``
	Address             string                  ``
	ParentContact       string                  ``
	Birthday            *time.Time              ``
	EnrollmentDate      *time.Time              ``
	EnrollmentYearStart int                     `gorm:"not null;default:0"`
	EnrollmentYearEnd   int                     `gorm:"not null;default:0"`
	SubjectsEnrolled    student.StringList      `gorm:"type:jsonb;default:'[]'"`
	Status              string                  `gorm:"not null;default:'active';index"`
	TotalFee            decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	PaidFee             decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	LastPayment         *time.Time              ``
	Installments        billing.InstallmentPlan `gorm:"type:jsonb;default:'[]'"`
}

// TableName specifies the table name for StudentModel
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts StudentModel to domain Student
func (m *StudentModel) ToDomain() *student.Student {
	s := &student.Student{
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		Category:            student.Category(m.Category),
		Course:              m.Course,
		Year:                m.Year,
		Semester:            m.Semester,
		Batch:               m.Batch,
		SchoolName:          m.SchoolName,
		Address:             m.Address,
		ParentContact:       m.ParentContact,
		Birthday:            m.Birthday,
		EnrollmentDate:      m.EnrollmentDate,
		EnrollmentYearStart: m.EnrollmentYearStart,
		EnrollmentYearEnd:   m.EnrollmentYearEnd,
		SubjectsEnrolled:    m.SubjectsEnrolled,
		Status:              student.Status(m.Status),
		TotalFee:            m.TotalFee,
		PaidFee:             m.PaidFee,
		LastPayment:         m.LastPayment,
		Installments:        m.Installments,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// StudentModelFromDomain converts domain Student to StudentModel
func StudentModelFromDomain(s *student.Student) *StudentModel {
	m := &StudentModel{
		Name:                s.Name,
		Email:               s.Email,
		Phone:               s.Phone,
		Category:            s.Category.String(),
		Course:              s.Course,
		Year:                s.Year,
		Semester:            s.Semester,
		Batch:               s.Batch,
		SchoolName:          s.SchoolName,
		Address:             s.Address,
		ParentContact:       s.ParentContact,
		Birthday:            s.Birthday,
		EnrollmentDate:      s.EnrollmentDate,
		EnrollmentYearStart: s.EnrollmentYearStart,
		EnrollmentYearEnd:   s.EnrollmentYearEnd,
		SubjectsEnrolled:    s.SubjectsEnrolled,
		Status:              s.Status.String(),
		TotalFee:            s.TotalFee,
		PaidFee:             s.PaidFee,
		LastPayment:         s.LastPayment,
		Installments:        s.Installments,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
