package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
)

func TestMySQLBINRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	record := testBINRecord()
	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
		WithArgs(record.BIN, record.IssuerName, record.Brand, record.CardType, record.CountryCode,
			record.BankPhone, record.BankURL, record.CreatedAt, record.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewMySQLBINRepository(db).Upsert(context.Background(), record)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLBINRepository_FindLongestPrefix(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("WHERE ? LIKE CONCAT(bin, '%')")

	t.Run("Success_Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		record := testBINRecord()
		mock.ExpectQuery(query).
			WithArgs("4111111111111111").
			WillReturnRows(sqlmock.NewRows(binColumns).AddRow(
				record.BIN, record.IssuerName, record.Brand, record.CardType, record.CountryCode,
				record.BankPhone, record.BankURL, record.CreatedAt, record.UpdatedAt,
			))

		got, err := NewMySQLBINRepository(db).FindLongestPrefix(ctx, "4111111111111111")

		require.NoError(t, err)
		assert.Equal(t, record, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(binColumns))

		_, err := NewMySQLBINRepository(db).FindLongestPrefix(ctx, "999999")

		assert.ErrorIs(t, err, binDomain.ErrBINNotFound)
	})
}

func TestMySQLBINRepository_ListPrefixes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT bin FROM bins")).
		WillReturnRows(sqlmock.NewRows([]string{"bin"}).AddRow("4").AddRow("6011"))

	got, err := NewMySQLBINRepository(db).ListPrefixes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"4", "6011"}, got)
}
