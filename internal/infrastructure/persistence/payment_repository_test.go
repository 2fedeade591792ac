package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPaymentRepository creates a GormPaymentRepository with a mocked SQL connection
func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		studentID := uuid.New()
		paidOn := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "student_id", "student_name", "amount", "payment_date", "payment_method", "status", "version"}).
			AddRow(paymentID, studentID, "Aarav Patil", decimal.NewFromInt(4000), paidOn, "upi", "Paid", 1)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(rows)

		p, err := repo.FindByID(context.Background(), paymentID)

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, studentID, p.StudentID)
		assert.Equal(t, "Aarav Patil", p.StudentName)
		assert.True(t, p.Amount.Equal(decimal.NewFromInt(4000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindByID(context.Background(), paymentID)

		assert.Nil(t, p)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByStudent(t *testing.T) {
	t.Run("lists a student's payments", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()
		paidOn := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "student_id", "student_name", "amount", "payment_date", "payment_method", "status", "version"}).
			AddRow(uuid.New(), studentID, "Aarav Patil", decimal.NewFromInt(4000), paidOn, "cash", "Paid", 1).
			AddRow(uuid.New(), studentID, "Aarav Patil", decimal.NewFromInt(2000), paidOn.AddDate(0, -1, 0), "upi", "Paid", 1)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE student_id = \$1 .*`).
			WillReturnRows(rows)

		payments, err := repo.FindByStudent(context.Background(), studentID, shared.DefaultFilter())

		assert.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, studentID, payments[0].StudentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindRecent(t *testing.T) {
	t.Run("defaults limit when non-positive", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "student_id", "student_name", "amount", "payment_date", "payment_method", "status", "version"})

		mock.ExpectQuery(`SELECT \* FROM "payments" ORDER BY payment_date DESC.*`).
			WillReturnRows(rows)

		payments, err := repo.FindRecent(context.Background(), 0)
		assert.NoError(t, err)
		assert.Empty(t, payments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_Count(t *testing.T) {
	t.Run("counts with student filter", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()
		rows := sqlmock.NewRows([]string{"count"}).AddRow(5)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE student_id = \$1`).
			WithArgs(studentID).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Filters["student_id"] = studentID

		count, err := repo.Count(context.Background(), filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
