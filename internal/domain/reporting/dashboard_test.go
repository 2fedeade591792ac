package reporting

import (
	"testing"
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/performance"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDashboard(t *testing.T) {
	a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 10000, 4000)
	b := mustStudent(t, "Meera", student.CategoryJuniorCollege, "Science", 12, 20000, 20000)
	b.Deactivate()

	stats := ComputeDashboard([]student.Student{a, b})

	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.True(t, stats.TotalFees.Equal(decimal.NewFromInt(30000)))
	assert.True(t, stats.TotalCollected.Equal(decimal.NewFromInt(24000)))
	assert.True(t, stats.TotalPending.Equal(decimal.NewFromInt(6000)))
}

func TestComputeDashboardEmpty(t *testing.T) {
	stats := ComputeDashboard(nil)
	assert.Zero(t, stats.TotalStudents)
	assert.True(t, stats.TotalPending.IsZero())
}

func TestDueInstallmentsOn(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 10000, 0)
	require.NoError(t, a.ReplaceInstallments(billing.InstallmentPlan{
		{Amount: decimal.NewFromInt(2500), DueDate: "2024-06-15"},
		{Amount: decimal.NewFromInt(2500), DueDate: "2024-07-15"},
	}))
	b := mustStudent(t, "Zoya", student.CategorySchool, "SSC", 9, 10000, 0)

	reminders := DueInstallmentsOn([]student.Student{a, b}, day)
	require.Len(t, reminders, 1)
	assert.Equal(t, a.ID, reminders[0].StudentID)
	assert.Equal(t, "Aarav", reminders[0].StudentName)
	assert.True(t, reminders[0].Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "2024-06-15", reminders[0].DueDate)
}

func TestBirthdaysOn(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 0, 0)
	birthday := time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)
	a.SetBirthday(&birthday)
	b := mustStudent(t, "Zoya", student.CategorySchool, "SSC", 9, 0, 0)

	reminders := BirthdaysOn([]student.Student{a, b}, day)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Aarav", reminders[0].Name)
	assert.Equal(t, student.CategorySchool, reminders[0].Category)
}

func TestExamsOn(t *testing.T) {
	day := time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC)

	today, err := performance.NewExam("Unit Test 1", day, "School", "SSC", 10)
	require.NoError(t, err)
	later, err := performance.NewExam("Unit Test 2", day.AddDate(0, 1, 0), "School", "SSC", 10)
	require.NoError(t, err)

	reminders := ExamsOn([]performance.Exam{*today, *later}, day)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Unit Test 1", reminders[0].Name)
}
