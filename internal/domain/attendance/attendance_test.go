package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	studentID := uuid.New()
	date := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("creates record truncated to day", func(t *testing.T) {
		r, err := NewRecord(studentID, date, "Maths", StatusPresent)
		require.NoError(t, err)

		assert.Equal(t, studentID, r.StudentID)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), r.Date)
		assert.Equal(t, "Maths", r.Subject)
		assert.True(t, r.IsPresent())
	})

	t.Run("rejects missing student", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, date, "", StatusPresent)
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewRecord(studentID, time.Time{}, "", StatusPresent)
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewRecord(studentID, date, "", Status("Late"))
		assert.Error(t, err)
	})
}

func TestRecordRemark(t *testing.T) {
	r, err := NewRecord(uuid.New(), time.Now(), "", StatusAbsent)
	require.NoError(t, err)
	assert.False(t, r.IsPresent())

	versionBefore := r.GetVersion()
	require.NoError(t, r.Remark(StatusPresent))
	assert.True(t, r.IsPresent())
	assert.Equal(t, versionBefore+1, r.GetVersion())

	assert.Error(t, r.Remark(Status("Half Day")))
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusPresent.IsValid())
	assert.True(t, StatusAbsent.IsValid())
	assert.False(t, Status("").IsValid())
	assert.Equal(t, "Present", StatusPresent.String())
}
