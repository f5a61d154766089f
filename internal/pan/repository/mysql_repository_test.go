package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLGenerationRecordRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()
	batchID := uuid.Must(uuid.NewV7())
	records := testRecords(batchID)

	t.Run("Success_StoresBinaryIDs", func(t *testing.T) {
		db, mock := newMockDB(t)
		for _, rec := range records {
			mock.ExpectExec(insertGeneratedPANs).
				WithArgs(mustBinary(t, rec.ID), mustBinary(t, batchID), rec.Template, rec.Position, rec.PAN,
					"Visa", rec.Expiry, rec.CVV, rec.Issuer, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		err := NewMySQLGenerationRecordRepository(db).CreateBatch(ctx, records)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_InsertFails", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insertGeneratedPANs).WillReturnError(errors.New("lock wait timeout"))

		err := NewMySQLGenerationRecordRepository(db).CreateBatch(ctx, records)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create generation record")
	})
}

func TestMySQLGenerationRecordRepository_ListByBatch(t *testing.T) {
	ctx := context.Background()
	batchID := uuid.Must(uuid.NewV7())
	records := testRecords(batchID)
	columns := []string{"id", "batch_id", "template", "position", "pan", "brand", "expiry", "cvv", "issuer", "created_at"}

	t.Run("Success_DecodesBinaryIDs", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows(columns)
		for _, rec := range records {
			rows.AddRow(mustBinary(t, rec.ID), mustBinary(t, rec.BatchID), rec.Template, int64(rec.Position),
				rec.PAN, string(rec.Brand), rec.Expiry, rec.CVV, rec.Issuer, rec.CreatedAt)
		}
		mock.ExpectQuery(selectGeneratedPANs).WithArgs(mustBinary(t, batchID), 2, 4).WillReturnRows(rows)

		got, err := NewMySQLGenerationRecordRepository(db).ListByBatch(ctx, batchID, 4, 2)

		require.NoError(t, err)
		assert.Equal(t, records, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_InvalidStoredID", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows(columns).
			AddRow([]byte{1, 2, 3}, mustBinary(t, batchID), "4", int64(0), "4111111111111111",
				"Visa", "01/29", "123", "Bank", records[0].CreatedAt)
		mock.ExpectQuery(selectGeneratedPANs).WillReturnRows(rows)

		_, err := NewMySQLGenerationRecordRepository(db).ListByBatch(ctx, batchID, 0, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal generation record id")
	})
}
