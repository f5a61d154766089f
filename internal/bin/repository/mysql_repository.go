package repository

import (
	"context"
	"database/sql"
	"errors"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
)

// MySQLBINRepository implements BIN persistence for MySQL databases.
type MySQLBINRepository struct {
	db *sql.DB
}

// Upsert inserts a BIN record or replaces the stored fields of an existing one.
func (m *MySQLBINRepository) Upsert(ctx context.Context, record *binDomain.BINRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO bins (bin, issuer_name, card_brand, card_type, country_code, bank_phone, bank_url, created_at, updated_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) 
			  ON DUPLICATE KEY UPDATE 
			  issuer_name = VALUES(issuer_name), card_brand = VALUES(card_brand), card_type = VALUES(card_type), 
			  country_code = VALUES(country_code), bank_phone = VALUES(bank_phone), bank_url = VALUES(bank_url), 
			  updated_at = VALUES(updated_at)`

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
func (m *MySQLBINRepository) FindLongestPrefix(
	ctx context.Context,
	number string,
) (*binDomain.BINRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT bin, issuer_name, card_brand, card_type, country_code, bank_phone, bank_url, created_at, updated_at 
			  FROM bins 
			  WHERE ? LIKE CONCAT(bin, '%') 
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
func (m *MySQLBINRepository) ListPrefixes(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)
	return listPrefixes(ctx, querier, "SELECT bin FROM bins ORDER BY bin ASC")
}

// NewMySQLBINRepository creates a new MySQL BIN repository instance.
func NewMySQLBINRepository(db *sql.DB) *MySQLBINRepository {
	return &MySQLBINRepository{db: db}
}
