package reporting

import (
	"sort"

	"github.com/classdesk/backend/internal/domain/student"
	"github.com/shopspring/decimal"
)

// YearGroup is the innermost grouping level: students of one category,
// course and year of study.
type YearGroup struct {
	Year          int               `json:"year"`
	Students      []student.Student `json:"students"`
	StudentCount  int               `json:"student_count"`
	TotalFees     decimal.Decimal   `json:"total_fees"`
	CollectedFees decimal.Decimal   `json:"collected_fees"`
	PendingFees   decimal.Decimal   `json:"pending_fees"`
}

// CourseGroup groups year groups under one course
type CourseGroup struct {
	Course        string          `json:"course"`
	Years         []*YearGroup    `json:"years"`
	StudentCount  int             `json:"student_count"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	CollectedFees decimal.Decimal `json:"collected_fees"`
	PendingFees   decimal.Decimal `json:"pending_fees"`
}

// CategoryGroup groups course groups under one category
type CategoryGroup struct {
	Category      student.Category `json:"category"`
	Courses       []*CourseGroup   `json:"courses"`
	StudentCount  int              `json:"student_count"`
	TotalFees     decimal.Decimal  `json:"total_fees"`
	CollectedFees decimal.Decimal  `json:"collected_fees"`
	PendingFees   decimal.Decimal  `json:"pending_fees"`
}

// Summary is the three-level category -> course -> year grouping over a
// student collection. Group order follows first-seen insertion order until
// an explicit sort is applied.
type Summary struct {
	Categories    []*CategoryGroup `json:"categories"`
	StudentCount  int              `json:"student_count"`
	TotalFees     decimal.Decimal  `json:"total_fees"`
	CollectedFees decimal.Decimal  `json:"collected_fees"`
	PendingFees   decimal.Decimal  `json:"pending_fees"`
}

// GroupByCategoryCourseYear builds the nested summary. Every student lands
// in exactly one year group, so the group member counts sum back to the
// input size. Pending fees are recomputed from each student's ledger, not
// read from stored fields.
func GroupByCategoryCourseYear(students []student.Student) *Summary {
	summary := &Summary{
		TotalFees:     decimal.Zero,
		CollectedFees: decimal.Zero,
		PendingFees:   decimal.Zero,
	}

	categoryIndex := make(map[student.Category]*CategoryGroup)
	courseIndex := make(map[student.Category]map[string]*CourseGroup)
	yearIndex := make(map[student.Category]map[string]map[int]*YearGroup)

	for _, s := range students {
		cat, ok := categoryIndex[s.Category]
		if !ok {
			cat = &CategoryGroup{
				Category:      s.Category,
				TotalFees:     decimal.Zero,
				CollectedFees: decimal.Zero,
				PendingFees:   decimal.Zero,
			}
			categoryIndex[s.Category] = cat
			courseIndex[s.Category] = make(map[string]*CourseGroup)
			yearIndex[s.Category] = make(map[string]map[int]*YearGroup)
			summary.Categories = append(summary.Categories, cat)
		}

		course, ok := courseIndex[s.Category][s.Course]
		if !ok {
			course = &CourseGroup{
				Course:        s.Course,
				TotalFees:     decimal.Zero,
				CollectedFees: decimal.Zero,
				PendingFees:   decimal.Zero,
			}
			courseIndex[s.Category][s.Course] = course
			yearIndex[s.Category][s.Course] = make(map[int]*YearGroup)
			cat.Courses = append(cat.Courses, course)
		}

		year, ok := yearIndex[s.Category][s.Course][s.Year]
		if !ok {
			year = &YearGroup{
				Year:          s.Year,
				TotalFees:     decimal.Zero,
				CollectedFees: decimal.Zero,
				PendingFees:   decimal.Zero,
			}
			yearIndex[s.Category][s.Course][s.Year] = year
			course.Years = append(course.Years, year)
		}

		ledger := s.Ledger()

		year.Students = append(year.Students, s)
		year.StudentCount++
		year.TotalFees = year.TotalFees.Add(s.TotalFee)
		year.CollectedFees = year.CollectedFees.Add(s.PaidFee)
		year.PendingFees = year.PendingFees.Add(ledger.DueAmount)

		course.StudentCount++
		course.TotalFees = course.TotalFees.Add(s.TotalFee)
		course.CollectedFees = course.CollectedFees.Add(s.PaidFee)
		course.PendingFees = course.PendingFees.Add(ledger.DueAmount)

		cat.StudentCount++
		cat.TotalFees = cat.TotalFees.Add(s.TotalFee)
		cat.CollectedFees = cat.CollectedFees.Add(s.PaidFee)
		cat.PendingFees = cat.PendingFees.Add(ledger.DueAmount)

		summary.StudentCount++
		summary.TotalFees = summary.TotalFees.Add(s.TotalFee)
		summary.CollectedFees = summary.CollectedFees.Add(s.PaidFee)
		summary.PendingFees = summary.PendingFees.Add(ledger.DueAmount)
	}

	return summary
}

// SortKey selects which axis a summary sort runs on
type SortKey string

const (
	SortByCategory SortKey = "category"
	SortByCourse   SortKey = "course"
	SortByYear     SortKey = "year"
	SortByName     SortKey = "name"
)

// IsValid checks if the sort key is known
func (k SortKey) IsValid() bool {
	switch k {
	case SortByCategory, SortByCourse, SortByYear, SortByName:
		return true
	}
	return false
}

// SortState tracks the active sort key and direction. Toggling the active
// key flips the direction; switching keys starts ascending again.
type SortState struct {
	Key       SortKey `json:"key"`
	Ascending bool    `json:"ascending"`
}

// Toggle returns the sort state after selecting a key
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Ascending: !s.Ascending}
	}
	return SortState{Key: key, Ascending: true}
}

// Sort orders the summary's groups by the given state. Sorts are stable,
// so ties keep their insertion order. Categories and courses compare
// lexicographically; years compare numerically; names sort the students
// inside every year group.
func (sum *Summary) Sort(state SortState) {
	asc := state.Ascending

	switch state.Key {
	case SortByCategory:
		sort.SliceStable(sum.Categories, func(i, j int) bool {
			if asc {
				return sum.Categories[i].Category < sum.Categories[j].Category
			}
			return sum.Categories[i].Category > sum.Categories[j].Category
		})
	case SortByCourse:
		for _, cat := range sum.Categories {
			sort.SliceStable(cat.Courses, func(i, j int) bool {
				if asc {
					return cat.Courses[i].Course < cat.Courses[j].Course
				}
				return cat.Courses[i].Course > cat.Courses[j].Course
			})
		}
	case SortByYear:
		for _, cat := range sum.Categories {
			for _, course := range cat.Courses {
				sort.SliceStable(course.Years, func(i, j int) bool {
					if asc {
						return course.Years[i].Year < course.Years[j].Year
					}
					return course.Years[i].Year > course.Years[j].Year
				})
			}
		}
	case SortByName:
		for _, cat := range sum.Categories {
			for _, course := range cat.Courses {
				for _, year := range course.Years {
					sort.SliceStable(year.Students, func(i, j int) bool {
						if asc {
							return year.Students[i].Name < year.Students[j].Name
						}
						return year.Students[i].Name > year.Students[j].Name
					})
				}
			}
		}
	}
}
