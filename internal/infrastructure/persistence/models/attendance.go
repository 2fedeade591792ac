package models

import (
	"time"

	"github.com/classdesk/backend/internal/domain/attendance"
	"github.com/google/uuid"
)

// AttendanceRecordModel is the GORM model for attendance records.
// One row per student per date per subject, enforced by a unique index so
// bulk marking upserts instead of duplicating.
type AttendanceRecordModel struct {
	AggregateModel
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_day"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_day;index"`
	Subject   string    `gorm:"uniqueIndex:idx_attendance_day"`
	Status    string    `gorm:"not null"`
}

// TableName specifies the table name for AttendanceRecordModel
func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts AttendanceRecordModel to domain Record
func (m *AttendanceRecordModel) ToDomain() *attendance.Record {
	r := &attendance.Record{
		StudentID: m.StudentID,
		Date:      m.Date,
		Subject:   m.Subject,
		Status:    attendance.Status(m.Status),
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// AttendanceRecordModelFromDomain converts domain Record to AttendanceRecordModel
func AttendanceRecordModelFromDomain(r *attendance.Record) *AttendanceRecordModel {
	m := &AttendanceRecordModel{
		StudentID: r.StudentID,
		Date:      r.Date,
		Subject:   r.Subject,
		Status:    r.Status.String(),
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
