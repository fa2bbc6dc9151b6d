package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	domainBooking "skillconnect/internal/domain/booking"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	updateStatusSQL = `UPDATE "bookings" SET .+ WHERE .*id = \$\d+ AND status = \$\d+`
	reloadSQL       = `SELECT \* FROM "bookings" WHERE id = \$1`
)

var bookingColumns = []string{
	"id", "customer_id", "worker_id", "category", "title", "description",
	"scheduled_date", "scheduled_time", "location", "status", "price",
	"images", "reason", "created_at", "updated_at", "completed_at",
}

func newMockRepository(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               gormLogger.Default.LogMode(gormLogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewBookingRepository(&DB{DB: gdb}), mock
}

func bookingRow(id uuid.UUID, status string, price interface{}) *sqlmock.Rows {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingColumns).AddRow(
		id.String(), uuid.NewString(), uuid.NewString(), "plumbing", "Fix sink", "Kitchen sink leaks",
		now.AddDate(0, 0, 2), "10:00", `{"address":"12 Herbert Macaulay Way","latitude":6.5,"longitude":3.37}`,
		status, price, `[]`, nil, now, now, nil,
	)
}

func TestBookingRepository_UpdateStatus_AppliesWhenStatusMatches(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()
	price := 15000.0

	mock.ExpectBegin()
	mock.ExpectExec(updateStatusSQL).
		WithArgs(price, "accepted", sqlmock.AnyArg(), sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reloadSQL).WillReturnRows(bookingRow(id, "accepted", price))
	mock.ExpectCommit()

	got, err := repo.UpdateStatus(context.Background(), id, &domainBooking.StatusUpdate{
		From:   domainBooking.StatusPending,
		Status: domainBooking.StatusAccepted,
		Price:  &price,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domainBooking.StatusAccepted, got.Status)
	require.NotNil(t, got.Price)
	assert.Equal(t, price, *got.Price)
	assert.Equal(t, 6.5, got.Location.Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_LosesRace(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	// another writer already moved the booking out of pending
	mock.ExpectBegin()
	mock.ExpectExec(updateStatusSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(reloadSQL).WillReturnRows(bookingRow(id, "cancelled", nil))
	mock.ExpectRollback()

	got, err := repo.UpdateStatus(context.Background(), id, &domainBooking.StatusUpdate{
		From:   domainBooking.StatusPending,
		Status: domainBooking.StatusAccepted,
	})
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainBooking.ErrStatusChanged))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_MissingBooking(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateStatusSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(reloadSQL).WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), uuid.New(), &domainBooking.StatusUpdate{
		From:   domainBooking.StatusAccepted,
		Status: domainBooking.StatusInProgress,
	})
	assert.True(t, errors.Is(err, domainBooking.ErrBookingNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_ExecFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateStatusSQL).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), uuid.New(), &domainBooking.StatusUpdate{
		From:   domainBooking.StatusPending,
		Status: domainBooking.StatusCancelled,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to update booking status")
	assert.NoError(t, mock.ExpectationsWereMet())
}
