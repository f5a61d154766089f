package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// importColumns lists the CSV header accepted by Import. Column order is free.
var importColumns = []string{
	"bin", "issuer_name", "card_brand", "card_type", "country_code", "bank_phone", "bank_url",
}

type binUseCase struct {
	txManager database.TxManager
	repo      BINRepository
	now       func() time.Time
}

// NewBINUseCase creates a BINUseCase.
func NewBINUseCase(txManager database.TxManager, repo BINRepository) BINUseCase {
	return &binUseCase{
		txManager: txManager,
		repo:      repo,
		now:       time.Now,
	}
}

func (b *binUseCase) Lookup(ctx context.Context, number string) (*panDomain.IssuerInfo, error) {
	record, err := b.Find(ctx, number)
	if err != nil {
		return nil, err
	}
	return record.IssuerInfo(), nil
}

func (b *binUseCase) Find(ctx context.Context, number string) (*binDomain.BINRecord, error) {
	if number == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "bin must not be empty")
	}
	return b.repo.FindLongestPrefix(ctx, number)
}

func (b *binUseCase) Import(ctx context.Context, r io.Reader) (int, error) {
	records, err := b.readCSV(r)
	if err != nil {
		return 0, err
	}

	err = b.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, record := range records {
			if err := b.repo.Upsert(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (b *binUseCase) RangeTable(ctx context.Context) (*panDomain.IssuerRangeTable, error) {
	prefixes, err := b.repo.ListPrefixes(ctx)
	if err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		return nil, apperrors.Wrap(binDomain.ErrBINNotFound, "no bins stored")
	}
	return panDomain.NewIssuerRangeTable(prefixes)
}

// readCSV parses and validates every row before anything is written.
func (b *binUseCase) readCSV(r io.Reader) ([]*binDomain.BINRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if apperrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", binDomain.ErrInvalidBINFile)
		}
		return nil, fmt.Errorf("%w: %v", binDomain.ErrInvalidBINFile, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range importColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", binDomain.ErrInvalidBINFile, name)
		}
	}

	now := b.now().UTC()
	records := make([]*binDomain.BINRecord, 0)
	for {
		row, err := reader.Read()
		if apperrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", binDomain.ErrInvalidBINFile, err)
		}

		field := func(name string) string {
			return strings.TrimSpace(row[index[name]])
		}
		record := &binDomain.BINRecord{
			BIN:         field("bin"),
			IssuerName:  field("issuer_name"),
			Brand:       field("card_brand"),
			CardType:    field("card_type"),
			CountryCode: strings.ToUpper(field("country_code")),
			BankPhone:   field("bank_phone"),
			BankURL:     field("bank_url"),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := record.Validate(); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.Wrapf(err, "line %d", line)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows", binDomain.ErrInvalidBINFile)
	}
	return records, nil
}
