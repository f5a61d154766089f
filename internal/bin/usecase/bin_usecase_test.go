package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/bin/usecase/mocks"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func newTestBINUseCase(repo BINRepository, tx *inlineTxManager) *binUseCase {
	uc := NewBINUseCase(tx, repo).(*binUseCase)
	uc.now = func() time.Time { return time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestBINUseCase_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ProjectsRecord", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("FindLongestPrefix", ctx, "4111111111111111").
			Return(&binDomain.BINRecord{BIN: "411111", IssuerName: "Test Bank", Brand: "VISA", CountryCode: "US"}, nil).
			Once()

		info, err := newTestBINUseCase(repo, &inlineTxManager{}).Lookup(ctx, "4111111111111111")

		require.NoError(t, err)
		assert.Equal(t, &panDomain.IssuerInfo{IssuerName: "Test Bank", Brand: panDomain.BrandVisa, CountryCode: "US"}, info)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("FindLongestPrefix", ctx, "999999").Return(nil, binDomain.ErrBINNotFound).Once()

		_, err := newTestBINUseCase(repo, &inlineTxManager{}).Lookup(ctx, "999999")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_EmptyNumber", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)

		_, err := newTestBINUseCase(repo, &inlineTxManager{}).Find(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestBINUseCase_Import(t *testing.T) {
	ctx := context.Background()
	header := "bin,issuer_name,card_brand,card_type,country_code,bank_phone,bank_url\n"

	t.Run("Success_UpsertsEveryRowInOneTransaction", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		tx := &inlineTxManager{}
		var stored []*binDomain.BINRecord
		repo.On("Upsert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				stored = append(stored, args.Get(1).(*binDomain.BINRecord))
			}).
			Return(nil).
			Twice()

		csvDoc := header +
			"411111,Test Bank,VISA,credit,us,+1 555 0100,https://bank.example\n" +
			"510510, Other Bank ,MasterCard,debit,BR,,\n"
		n, err := newTestBINUseCase(repo, tx).Import(ctx, strings.NewReader(csvDoc))

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, tx.calls)
		require.Len(t, stored, 2)
		assert.Equal(t, "US", stored[0].CountryCode)
		assert.Equal(t, "Other Bank", stored[1].IssuerName)
		assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), stored[1].CreatedAt)
	})

	t.Run("Success_ColumnOrderIsFree", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("Upsert", ctx, mock.MatchedBy(func(r *binDomain.BINRecord) bool {
			return r.BIN == "34" && r.IssuerName == "Amex Bank"
		})).Return(nil).Once()

		csvDoc := "issuer_name,bin,card_brand,card_type,country_code,bank_phone,bank_url\n" +
			"Amex Bank,34,AMEX,credit,US,,\n"
		n, err := newTestBINUseCase(repo, &inlineTxManager{}).Import(ctx, strings.NewReader(csvDoc))

		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Error_MissingColumn", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		tx := &inlineTxManager{}

		_, err := newTestBINUseCase(repo, tx).Import(ctx, strings.NewReader("bin,issuer_name\n411111,Bank\n"))

		assert.ErrorIs(t, err, binDomain.ErrInvalidBINFile)
		assert.Zero(t, tx.calls)
	})

	t.Run("Error_InvalidRowStopsBeforeWriting", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		tx := &inlineTxManager{}

		csvDoc := header + "411111,Test Bank,VISA,credit,US,,\n" + "41x111,Bad Bank,VISA,credit,US,,\n"
		_, err := newTestBINUseCase(repo, tx).Import(ctx, strings.NewReader(csvDoc))

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "line 3")
		assert.Zero(t, tx.calls)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)

		_, err := newTestBINUseCase(repo, &inlineTxManager{}).Import(ctx, strings.NewReader(""))

		assert.ErrorIs(t, err, binDomain.ErrInvalidBINFile)
	})

	t.Run("Error_HeaderOnly", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)

		_, err := newTestBINUseCase(repo, &inlineTxManager{}).Import(ctx, strings.NewReader(header))

		assert.ErrorIs(t, err, binDomain.ErrInvalidBINFile)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("Upsert", ctx, mock.Anything).Return(errors.New("db down")).Once()

		n, err := newTestBINUseCase(repo, &inlineTxManager{}).
			Import(ctx, strings.NewReader(header+"411111,Test Bank,VISA,credit,US,,\n"))

		assert.EqualError(t, err, "db down")
		assert.Zero(t, n)
	})
}

func TestBINUseCase_RangeTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_BuildsOrderedTable", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("ListPrefixes", ctx).Return([]string{"4", "411111", "51"}, nil).Once()

		table, err := newTestBINUseCase(repo, &inlineTxManager{}).RangeTable(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"411111", "51", "4"}, table.Prefixes())
	})

	t.Run("Error_NoBins", func(t *testing.T) {
		repo := mocks.NewMockBINRepository(t)
		repo.On("ListPrefixes", ctx).Return([]string{}, nil).Once()

		_, err := newTestBINUseCase(repo, &inlineTxManager{}).RangeTable(ctx)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
