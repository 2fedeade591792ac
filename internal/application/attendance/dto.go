package attendance

import (
	"time"

	"github.com/classdesk/backend/internal/domain/attendance"
	"github.com/google/uuid"
)

// =============================================================================
// Attendance DTOs
// =============================================================================

// BulkMarkEntry is one student's mark within a bulk marking request
type BulkMarkEntry struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Status    string    `json:"status" binding:"required,oneof=Present Absent"`
}

// BulkMarkRequest marks attendance for a class roster on one date.
// Re-marking an already marked student/date/subject overwrites the
// earlier status instead of adding a second record.
type BulkMarkRequest struct {
	Date    string          `json:"date" binding:"required"`
	Subject string          `json:"subject" binding:"max=100"`
	Entries []BulkMarkEntry `json:"entries" binding:"required,min=1,dive"`
}

// BulkMarkResponse reports how many marks were created vs overwritten
type BulkMarkResponse struct {
	Marked    int `json:"marked"`
	Updated   int `json:"updated"`
	Processed int `json:"processed"`
}

// RecordResponse represents an attendance record in API responses
type RecordResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Date      string    `json:"date"`
	Subject   string    `json:"subject,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFilter represents filter options for attendance list
type ListFilter struct {
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	Subject   string `form:"subject"`
	Status    string `form:"status" binding:"omitempty,oneof=Present Absent"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// dateLayout is the calendar-date format used on the attendance API
const dateLayout = "2006-01-02"

// ToRecordResponse converts a domain Record to RecordResponse
func ToRecordResponse(r *attendance.Record) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.Format(dateLayout),
		Subject:   r.Subject,
		Status:    r.Status.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToRecordResponses converts domain Records to responses
func ToRecordResponses(records []attendance.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
