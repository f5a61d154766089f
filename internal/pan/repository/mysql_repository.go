package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// MySQLGenerationRecordRepository implements generation record persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLGenerationRecordRepository struct {
	db *sql.DB
}

// CreateBatch inserts every record of a batch.
func (m *MySQLGenerationRecordRepository) CreateBatch(
	ctx context.Context,
	records []*panDomain.GenerationRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO generated_pans (id, batch_id, template, position, pan, brand, expiry, cvv, issuer, created_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, rec := range records {
		id, err := rec.ID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal generation record id")
		}
		batchID, err := rec.BatchID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal batch id")
		}

		_, err = querier.ExecContext(
			ctx,
			query,
			id,
			batchID,
			rec.Template,
			rec.Position,
			rec.PAN,
			string(rec.Brand),
			rec.Expiry,
			rec.CVV,
			rec.Issuer,
			rec.CreatedAt,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to create generation record")
		}
	}
	return nil
}

// ListByBatch returns records of one batch ordered by position.
func (m *MySQLGenerationRecordRepository) ListByBatch(
	ctx context.Context,
	batchID uuid.UUID,
	offset, limit int,
) ([]*panDomain.GenerationRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, batch_id, template, position, pan, brand, expiry, cvv, issuer, created_at 
			  FROM generated_pans 
			  WHERE batch_id = ? 
			  ORDER BY position ASC 
			  LIMIT ? OFFSET ?`

	batchIDBinary, err := batchID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal batch id")
	}

	rows, err := querier.QueryContext(ctx, query, batchIDBinary, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generation records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*panDomain.GenerationRecord, 0)
	for rows.Next() {
		var rec panDomain.GenerationRecord
		var id, batch []byte
		var brand string
		if err := rows.Scan(
			&id,
			&batch,
			&rec.Template,
			&rec.Position,
			&rec.PAN,
			&brand,
			&rec.Expiry,
			&rec.CVV,
			&rec.Issuer,
			&rec.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan generation record")
		}
		if err := rec.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal generation record id")
		}
		if err := rec.BatchID.UnmarshalBinary(batch); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal batch id")
		}
		rec.Brand = panDomain.Brand(brand)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate generation records")
	}

	return records, nil
}

// NewMySQLGenerationRecordRepository creates a new MySQL generation record repository.
func NewMySQLGenerationRecordRepository(db *sql.DB) *MySQLGenerationRecordRepository {
	return &MySQLGenerationRecordRepository{db: db}
}
