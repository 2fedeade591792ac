package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appbilling "github.com/classdesk/backend/internal/application/billing"
	"github.com/classdesk/backend/internal/domain/attendance"
	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/reporting"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	feeSummaryCacheKey = "reports:fee_summary:%s:%t"
	dashboardCacheKey  = "reports:dashboard"

	recentPaymentsLimit = 5
)

// ReportService computes the aggregated admin reports. Fee figures are
// always derived from the student ledgers at read time; the cache only
// shortens repeat reads and is invalidated on every write.
type ReportService struct {
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
	examRepo       performance.ExamRepository
	paymentRepo    billing.PaymentRepository
	cache          reporting.Cache // optional, may be nil
	cacheTTL       time.Duration
}

// NewReportService creates a new ReportService
func NewReportService(
	studentRepo student.Repository,
	attendanceRepo attendance.Repository,
	examRepo performance.ExamRepository,
	paymentRepo billing.PaymentRepository,
	cache reporting.Cache,
	cacheTTL time.Duration,
) *ReportService {
	return &ReportService{
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		examRepo:       examRepo,
		paymentRepo:    paymentRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
	}
}

// FeeSummary builds the category -> course -> year fee summary over all
// students. Group order is first-seen until a sort key is applied; sorts
// are stable so ties keep their insertion order.
func (s *ReportService) FeeSummary(ctx context.Context, filter FeeSummaryFilter) (*reporting.Summary, error) {
	ascending := true
	if filter.Ascending != nil {
		ascending = *filter.Ascending
	}

	cacheKey := fmt.Sprintf(feeSummaryCacheKey, filter.SortKey, ascending)
	var cached reporting.Summary
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	students, err := s.studentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	summary := reporting.GroupByCategoryCourseYear(students)
	if key := reporting.SortKey(filter.SortKey); key.IsValid() {
		summary.Sort(reporting.SortState{Key: key, Ascending: ascending})
	}

	s.cacheSet(ctx, cacheKey, summary)
	return summary, nil
}

// AttendanceSummary rolls up per-student present-day counts into
// per-category attendance percentages over a reporting period.
func (s *ReportService) AttendanceSummary(ctx context.Context, filter AttendanceSummaryFilter) (*AttendanceSummaryResponse, error) {
	from, err := time.Parse(dateLayout, filter.From)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "From date must be in yyyy-mm-dd format")
	}
	to, err := time.Parse(dateLayout, filter.To)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "To date must be in yyyy-mm-dd format")
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "To date must not be before from date")
	}

	days := filter.Days
	if days <= 0 {
		days = int(to.Sub(from).Hours()/24) + 1
	}

	students, err := s.studentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	presentByStudent := make(map[uuid.UUID]int64, len(students))
	for i := range students {
		count, err := s.attendanceRepo.CountPresent(ctx, students[i].ID, from, to)
		if err != nil {
			return nil, err
		}
		presentByStudent[students[i].ID] = count
	}

	return &AttendanceSummaryResponse{
		From:       filter.From,
		To:         filter.To,
		Days:       days,
		Categories: reporting.SummarizeAttendanceByCategory(students, presentByStudent, days),
	}, nil
}

// Dashboard returns the headline stats plus the most recent payments
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var cached DashboardResponse
	if s.cacheGet(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	students, err := s.studentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	recent, err := s.paymentRepo.FindRecent(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, err
	}

	response := &DashboardResponse{
		Stats:          reporting.ComputeDashboard(students),
		RecentPayments: appbilling.ToPaymentResponses(recent),
	}

	s.cacheSet(ctx, dashboardCacheKey, response)
	return response, nil
}

// Reminders lists everything flagged for one calendar day: installments
// falling due, student birthdays and scheduled exams. An empty date means
// today.
func (s *ReportService) Reminders(ctx context.Context, date string) (*RemindersResponse, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Date must be in yyyy-mm-dd format")
		}
		day = parsed
	}

	students, err := s.studentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	exams, err := s.examRepo.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	due := reporting.DueInstallmentsOn(students, day)
	birthdays := reporting.BirthdaysOn(students, day)
	examsToday := reporting.ExamsOn(exams, day)

	return &RemindersResponse{
		Date:         day.Format(dateLayout),
		DueToday:     due,
		Birthdays:    birthdays,
		ExamsToday:   examsToday,
		TotalFlagged: len(due) + len(birthdays) + len(examsToday),
	}, nil
}

// cacheGet loads and unmarshals a cached report. Misses and cache errors
// both report false; reports fall back to recomputation.
func (s *ReportService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, s.cacheTTL)
}
