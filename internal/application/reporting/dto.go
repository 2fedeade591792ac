package reporting

import (
	"github.com/classdesk/backend/internal/application/billing"
	"github.com/classdesk/backend/internal/domain/reporting"
)

// =============================================================================
// Report DTOs
// =============================================================================

// FeeSummaryFilter selects the sort axis of the fee summary report
type FeeSummaryFilter struct {
	SortKey   string `form:"sort_key" binding:"omitempty,oneof=category course year name"`
	Ascending *bool  `form:"ascending"`
}

// AttendanceSummaryFilter bounds the attendance report period. Days is the
// number of working days in the period; when omitted it is derived from
// the calendar span of from..to.
type AttendanceSummaryFilter struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	Days int    `form:"days" binding:"min=0"`
}

// AttendanceSummaryResponse is the per-category attendance roll-up
type AttendanceSummaryResponse struct {
	From       string                         `json:"from"`
	To         string                         `json:"to"`
	Days       int                            `json:"days"`
	Categories []reporting.CategoryAttendance `json:"categories"`
}

// DashboardResponse pairs the headline stats with the latest payments
type DashboardResponse struct {
	Stats          reporting.DashboardStats  `json:"stats"`
	RecentPayments []billing.PaymentResponse `json:"recent_payments"`
}

// RemindersResponse lists everything flagged for one calendar day
type RemindersResponse struct {
	Date         string                       `json:"date"`
	DueToday     []reporting.DueReminder      `json:"due_today"`
	Birthdays    []reporting.BirthdayReminder `json:"birthdays"`
	ExamsToday   []reporting.ExamReminder     `json:"exams_today"`
	TotalFlagged int                          `json:"total_flagged"`
}
