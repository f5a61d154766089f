package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/pangen/internal/database"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// historyUseCase implements HistoryUseCase with a transactional record repository.
type historyUseCase struct {
	txManager database.TxManager
	repo      GenerationRecordRepository
}

// NewHistoryUseCase creates a HistoryUseCase.
func NewHistoryUseCase(txManager database.TxManager, repo GenerationRecordRepository) HistoryUseCase {
	return &historyUseCase{
		txManager: txManager,
		repo:      repo,
	}
}

// Save stores records as one batch inside a single transaction.
func (h *historyUseCase) Save(
	ctx context.Context,
	template string,
	records []*panDomain.PANMetadata,
) (uuid.UUID, error) {
	if len(records) == 0 {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no records to save")
	}

	batchID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to generate batch id")
	}

	createdAt := time.Now().UTC()
	rows := make([]*panDomain.GenerationRecord, 0, len(records))
	for i, rec := range records {
		rows = append(rows, &panDomain.GenerationRecord{
			ID:        uuid.Must(uuid.NewV7()),
			BatchID:   batchID,
			Template:  template,
			Position:  i,
			PAN:       rec.PAN.String(),
			Brand:     rec.Brand,
			Expiry:    rec.Expiry.String(),
			CVV:       rec.CVV,
			Issuer:    rec.Issuer,
			CreatedAt: createdAt,
		})
	}

	err = h.txManager.WithTx(ctx, func(ctx context.Context) error {
		return h.repo.CreateBatch(ctx, rows)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return batchID, nil
}

// List returns one page of a stored batch.
func (h *historyUseCase) List(
	ctx context.Context,
	batchID uuid.UUID,
	offset, limit int,
) ([]*panDomain.GenerationRecord, error) {
	records, err := h.repo.ListByBatch(ctx, batchID, offset, limit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && offset == 0 {
		return nil, panDomain.ErrGenerationRecordNotFound
	}
	return records, nil
}
