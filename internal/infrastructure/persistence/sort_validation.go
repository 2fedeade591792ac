package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// StudentSortFields contains allowed sort fields for students
var StudentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"email":        true,
	"phone":        true,
	"category":     true,
	"course":       true,
	"year":         true,
	"status":       true,
	"total_fee":    true,
	"paid_fee":     true,
	"last_payment": true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"student_id":     true,
	"student_name":   true,
	"amount":         true,
	"payment_date":   true,
	"payment_method": true,
}

// AttendanceSortFields contains allowed sort fields for attendance records
var AttendanceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"student_id": true,
	"date":       true,
	"subject":    true,
	"status":     true,
}

// ExamSortFields contains allowed sort fields for exams
var ExamSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"date":       true,
	"category":   true,
	"course":     true,
	"year":       true,
}

// PerformanceSortFields contains allowed sort fields for performance records
var PerformanceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"student_id": true,
	"exam_name":  true,
	"date":       true,
	"percentage": true,
}
