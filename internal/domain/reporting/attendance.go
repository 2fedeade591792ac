package reporting

import (
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryAttendance is the attendance roll-up for one category over a
// reporting period.
type CategoryAttendance struct {
	Category     student.Category `json:"category"`
	StudentCount int              `json:"student_count"`
	PresentCount int64            `json:"present_count"`
	AveragePct   string           `json:"average_pct"`
}

// SummarizeAttendanceByCategory aggregates per-student present-day counts
// into per-category attendance percentages over a period of daysInPeriod
// working days.
//
// averagePct = presentCount / (studentCount * daysInPeriod) * 100,
// rendered with two decimals. A zero denominator yields "0.00" rather
// than a division error.
func SummarizeAttendanceByCategory(
	students []student.Student,
	presentByStudent map[uuid.UUID]int64,
	daysInPeriod int,
) []CategoryAttendance {
	index := make(map[student.Category]*CategoryAttendance)
	var ordered []*CategoryAttendance

	for _, s := range students {
		entry, ok := index[s.Category]
		if !ok {
			entry = &CategoryAttendance{Category: s.Category}
			index[s.Category] = entry
			ordered = append(ordered, entry)
		}
		entry.StudentCount++
		entry.PresentCount += presentByStudent[s.ID]
	}

	result := make([]CategoryAttendance, 0, len(ordered))
	for _, entry := range ordered {
		entry.AveragePct = averagePct(entry.PresentCount, entry.StudentCount, daysInPeriod)
		result = append(result, *entry)
	}
	return result
}

func averagePct(presentCount int64, studentCount, daysInPeriod int) string {
	denominator := int64(studentCount) * int64(daysInPeriod)
	if denominator == 0 {
		return "0.00"
	}
	return decimal.NewFromInt(presentCount).
		Div(decimal.NewFromInt(denominator)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}
