package utils

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGenerateUniqueBookingReference(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// First candidate collides, the retry is free.
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE reference =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference"}).AddRow("b2c8f0aa-0000-0000-0000-000000000000", "BK-TAKEN123"))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE reference =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	code, err := GenerateUniqueBookingReference(db)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "BK-"))
	assert.Len(t, code, len("BK-")+8)
	for _, r := range strings.TrimPrefix(code, "BK-") {
		assert.Contains(t, letterBytes, string(r))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
