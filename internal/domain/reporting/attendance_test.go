package reporting

import (
	"testing"

	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAttendanceByCategory(t *testing.T) {
	t.Run("computes average percentage over the period", func(t *testing.T) {
		a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 0, 0)
		b := mustStudent(t, "Zoya", student.CategorySchool, "SSC", 9, 0, 0)
		present := map[uuid.UUID]int64{
			a.ID: 15,
			b.ID: 10,
		}

		result := SummarizeAttendanceByCategory([]student.Student{a, b}, present, 20)
		require.Len(t, result, 1)

		entry := result[0]
		assert.Equal(t, student.CategorySchool, entry.Category)
		assert.Equal(t, 2, entry.StudentCount)
		assert.Equal(t, int64(25), entry.PresentCount)
		// (15+10) / (2*20) * 100
		assert.Equal(t, "62.50", entry.AveragePct)
	})

	t.Run("zero denominator yields 0.00", func(t *testing.T) {
		a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 0, 0)

		result := SummarizeAttendanceByCategory([]student.Student{a}, nil, 0)
		require.Len(t, result, 1)
		assert.Equal(t, "0.00", result[0].AveragePct)

		result = SummarizeAttendanceByCategory(nil, nil, 20)
		assert.Empty(t, result)
	})

	t.Run("categories keep first-seen order", func(t *testing.T) {
		jc := mustStudent(t, "Meera", student.CategoryJuniorCollege, "Science", 12, 0, 0)
		school := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 0, 0)

		result := SummarizeAttendanceByCategory([]student.Student{jc, school}, nil, 20)
		require.Len(t, result, 2)
		assert.Equal(t, student.CategoryJuniorCollege, result[0].Category)
		assert.Equal(t, student.CategorySchool, result[1].Category)
	})

	t.Run("students with no marks count as zero present days", func(t *testing.T) {
		a := mustStudent(t, "Aarav", student.CategorySchool, "SSC", 10, 0, 0)
		b := mustStudent(t, "Zoya", student.CategorySchool, "SSC", 9, 0, 0)
		present := map[uuid.UUID]int64{a.ID: 20}

		result := SummarizeAttendanceByCategory([]student.Student{a, b}, present, 20)
		require.Len(t, result, 1)
		// 20 / (2*20) * 100
		assert.Equal(t, "50.00", result[0].AveragePct)
	})
}
