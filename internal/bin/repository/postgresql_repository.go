// Package repository implements BIN reference persistence for PostgreSQL and MySQL,
// and loading of issuer range files.
package repository

import (
	"context"
	"database/sql"
	"errors"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
)

// PostgreSQLBINRepository implements BIN persistence for PostgreSQL databases.
type PostgreSQLBINRepository struct {
	db *sql.DB
}

// Upsert inserts a BIN record or replaces the stored fields of an existing one.
func (p *PostgreSQLBINRepository) Upsert(ctx context.Context, record *binDomain.BINRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO bins (bin, issuer_name, card_brand, card_type, country_code, bank_phone, bank_url, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) 
			  ON CONFLICT (bin) DO UPDATE SET 
			  issuer_name = EXCLUDED.issuer_name, card_brand = EXCLUDED.card_brand, card_type = EXCLUDED.card_type, 
			  country_code = EXCLUDED.country_code, bank_phone = EXCLUDED.bank_phone, bank_url = EXCLUDED.bank_url, 
			  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.BIN,
		record.IssuerName,
		record.Brand,
		record.CardType,
		record.CountryCode,
		record.BankPhone,
		record.BankURL,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert bin")
	}
	return nil
}

// FindLongestPrefix returns the longest stored BIN that is a prefix of number.
func (p *PostgreSQLBINRepository) FindLongestPrefix(
	ctx context.Context,
	number string,
) (*binDomain.BINRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT bin, issuer_name, card_brand, card_type, country_code, bank_phone, bank_url, created_at, updated_at 
			  FROM bins 
			  WHERE $1 LIKE bin || '%' 
			  ORDER BY LENGTH(bin) DESC 
			  LIMIT 1`

	var record binDomain.BINRecord
	err := querier.QueryRowContext(ctx, query, number).Scan(
		&record.BIN,
		&record.IssuerName,
		&record.Brand,
		&record.CardType,
		&record.CountryCode,
		&record.BankPhone,
		&record.BankURL,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, binDomain.ErrBINNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find bin")
	}
	return &record, nil
}

// ListPrefixes returns every stored BIN.
func (p *PostgreSQLBINRepository) ListPrefixes(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)
	return listPrefixes(ctx, querier, `SELECT bin FROM bins ORDER BY bin ASC`)
}

// NewPostgreSQLBINRepository creates a new PostgreSQL BIN repository instance.
func NewPostgreSQLBINRepository(db *sql.DB) *PostgreSQLBINRepository {
	return &PostgreSQLBINRepository{db: db}
}

func listPrefixes(ctx context.Context, querier database.Querier, query string) ([]string, error) {
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list bins")
	}
	defer func() {
		_ = rows.Close()
	}()

	prefixes := make([]string, 0)
	for rows.Next() {
		var bin string
		if err := rows.Scan(&bin); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan bin")
		}
		prefixes = append(prefixes, bin)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate bins")
	}
	return prefixes, nil
}
