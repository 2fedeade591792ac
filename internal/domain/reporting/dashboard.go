package reporting

import (
	"time"

	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats are the headline numbers on the admin dashboard. All fee
// figures are recomputed from the student ledgers at read time.
type DashboardStats struct {
	TotalStudents  int             `json:"total_students"`
	ActiveStudents int             `json:"active_students"`
	TotalFees      decimal.Decimal `json:"total_fees"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalPending   decimal.Decimal `json:"total_pending"`
}

// ComputeDashboard derives the dashboard stats from a student collection
func ComputeDashboard(students []student.Student) DashboardStats {
	stats := DashboardStats{
		TotalFees:      decimal.Zero,
		TotalCollected: decimal.Zero,
		TotalPending:   decimal.Zero,
	}
	for _, s := range students {
		stats.TotalStudents++
		if s.IsActive() {
			stats.ActiveStudents++
		}
		ledger := s.Ledger()
		stats.TotalFees = stats.TotalFees.Add(s.TotalFee)
		stats.TotalCollected = stats.TotalCollected.Add(s.PaidFee)
		stats.TotalPending = stats.TotalPending.Add(ledger.DueAmount)
	}
	return stats
}

// DueReminder flags an installment falling due today
type DueReminder struct {
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
}

// BirthdayReminder flags a student whose birthday is today
type BirthdayReminder struct {
	StudentID uuid.UUID        `json:"student_id"`
	Name      string           `json:"name"`
	Category  student.Category `json:"category"`
	Course    string           `json:"course"`
}

// ExamReminder flags an exam scheduled for today
type ExamReminder struct {
	ExamID   uuid.UUID `json:"exam_id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Course   string    `json:"course,omitempty"`
}

// DueInstallmentsOn lists the installments of all students that fall due
// on the given day.
func DueInstallmentsOn(students []student.Student, day time.Time) []DueReminder {
	var reminders []DueReminder
	for _, s := range students {
		for _, inst := range s.InstallmentsDueOn(day) {
			reminders = append(reminders, DueReminder{
				StudentID:   s.ID,
				StudentName: s.Name,
				Amount:      inst.Amount,
				DueDate:     inst.DueDate,
			})
		}
	}
	return reminders
}

// BirthdaysOn lists students whose birthday (month and day) matches the
// given day.
func BirthdaysOn(students []student.Student, day time.Time) []BirthdayReminder {
	var reminders []BirthdayReminder
	for _, s := range students {
		if s.HasBirthdayOn(day) {
			reminders = append(reminders, BirthdayReminder{
				StudentID: s.ID,
				Name:      s.Name,
				Category:  s.Category,
				Course:    s.Course,
			})
		}
	}
	return reminders
}

// ExamsOn lists exams scheduled for the given day
func ExamsOn(exams []performance.Exam, day time.Time) []ExamReminder {
	var reminders []ExamReminder
	for _, e := range exams {
		if e.IsOn(day) {
			reminders = append(reminders, ExamReminder{
				ExamID:   e.ID,
				Name:     e.Name,
				Category: e.Category,
				Course:   e.Course,
			})
		}
	}
	return reminders
}
