// Package repository implements persistence for generated PAN batches.
// Supports PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// PostgreSQLGenerationRecordRepository implements generation record persistence for PostgreSQL.
type PostgreSQLGenerationRecordRepository struct {
	db *sql.DB
}

// CreateBatch inserts every record of a batch. Callers run it inside a transaction
// so a batch is stored completely or not at all.
func (p *PostgreSQLGenerationRecordRepository) CreateBatch(
	ctx context.Context,
	records []*panDomain.GenerationRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO generated_pans (id, batch_id, template, position, pan, brand, expiry, cvv, issuer, created_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, rec := range records {
		_, err := querier.ExecContext(
			ctx,
			query,
			rec.ID,
			rec.BatchID,
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
func (p *PostgreSQLGenerationRecordRepository) ListByBatch(
	ctx context.Context,
	batchID uuid.UUID,
	offset, limit int,
) ([]*panDomain.GenerationRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, batch_id, template, position, pan, brand, expiry, cvv, issuer, created_at 
			  FROM generated_pans 
			  WHERE batch_id = $1 
			  ORDER BY position ASC 
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, batchID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list generation records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*panDomain.GenerationRecord, 0)
	for rows.Next() {
		var rec panDomain.GenerationRecord
		var brand string
		if err := rows.Scan(
			&rec.ID,
			&rec.BatchID,
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
		rec.Brand = panDomain.Brand(brand)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate generation records")
	}

	return records, nil
}

// NewPostgreSQLGenerationRecordRepository creates a new PostgreSQL generation record repository.
func NewPostgreSQLGenerationRecordRepository(db *sql.DB) *PostgreSQLGenerationRecordRepository {
	return &PostgreSQLGenerationRecordRepository{db: db}
}
