package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStudentRepository creates a GormStudentRepository with a mocked SQL connection
func newMockStudentRepository(t *testing.T) (*GormStudentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStudentRepository(gormDB), mock, mockDB
}

func TestNewGormStudentRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormStudentRepository_FindByID(t *testing.T) {
	t.Run("finds existing student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category", "course", "year", "status", "total_fee", "paid_fee", "installments", "subjects_enrolled", "version"}).
			AddRow(studentID, "Aarav Patil", "School", "SSC", 10, "active", decimal.NewFromInt(10000), decimal.NewFromInt(4000), []byte(`[]`), []byte(`[]`), 1)

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(studentID, 1).
			WillReturnRows(rows)

		s, err := repo.FindByID(context.Background(), studentID)

		assert.NoError(t, err)
		assert.NotNil(t, s)
		assert.Equal(t, studentID, s.ID)
		assert.Equal(t, "Aarav Patil", s.Name)
		assert.Equal(t, student.CategorySchool, s.Category)
		assert.True(t, s.TotalFee.Equal(decimal.NewFromInt(10000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("derives ledger from loaded amounts", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category", "course", "year", "status", "total_fee", "paid_fee", "installments", "subjects_enrolled", "version"}).
			AddRow(studentID, "Aarav Patil", "School", "SSC", 10, "active", decimal.NewFromInt(10000), decimal.NewFromInt(4000), []byte(`[]`), []byte(`[]`), 1)

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(studentID, 1).
			WillReturnRows(rows)

		s, err := repo.FindByID(context.Background(), studentID)
		require.NoError(t, err)

		ledger := s.Ledger()
		assert.True(t, ledger.DueAmount.Equal(decimal.NewFromInt(6000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(studentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		s, err := repo.FindByID(context.Background(), studentID)

		assert.Error(t, err)
		assert.Nil(t, s)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_FindByPhone(t *testing.T) {
	t.Run("rejects empty phone", func(t *testing.T) {
		repo, _, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		s, err := repo.FindByPhone(context.Background(), "")
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("finds student by phone", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "phone", "category", "course", "year", "status", "total_fee", "paid_fee", "installments", "subjects_enrolled", "version"}).
			AddRow(studentID, "Aarav Patil", "9876543210", "School", "SSC", 10, "active", decimal.Zero, decimal.Zero, []byte(`[]`), []byte(`[]`), 1)

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE phone = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("9876543210", 1).
			WillReturnRows(rows)

		s, err := repo.FindByPhone(context.Background(), "9876543210")
		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "9876543210", s.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		s, err := student.NewStudent("Aarav Patil", "", "", student.CategorySchool, "SSC", 10, valueobject.NewMoneyINRFromFloat(10000))
		require.NoError(t, err)
		s.RebuildInstallments(4) // bumps version to 2

		mock.ExpectExec(`UPDATE "students" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), s)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		s, err := student.NewStudent("Aarav Patil", "", "", student.CategorySchool, "SSC", 10, valueobject.NewMoneyINRFromFloat(10000))
		require.NoError(t, err)
		s.RebuildInstallments(4)

		mock.ExpectExec(`UPDATE "students" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), s)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_Delete(t *testing.T) {
	t.Run("deletes existing student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectExec(`DELETE FROM "students" WHERE id = \$1`).
			WithArgs(studentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), studentID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectExec(`DELETE FROM "students" WHERE id = \$1`).
			WithArgs(studentID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), studentID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_Count(t *testing.T) {
	t.Run("counts with category filter", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "students" WHERE category = \$1`).
			WithArgs("School").
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Filters["category"] = "School"

		count, err := repo.Count(context.Background(), filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
