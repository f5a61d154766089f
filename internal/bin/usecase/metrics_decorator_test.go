package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/bin/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordGenerated(ctx context.Context, domain, operation string, count int) {
	m.Called(ctx, domain, operation, count)
}

func TestBINUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Find", func(t *testing.T) {
		next := mocks.NewMockBINUseCase(t)
		m := &mockBusinessMetrics{}
		next.On("Find", ctx, "411111").Return(&binDomain.BINRecord{BIN: "411111"}, nil).Once()
		m.On("RecordOperation", ctx, "bin", "find", "success").Once()
		m.On("RecordDuration", ctx, "bin", "find", mock.AnythingOfType("time.Duration"), "success").Once()

		record, err := NewBINUseCaseWithMetrics(next, m).Find(ctx, "411111")

		require.NoError(t, err)
		assert.Equal(t, "411111", record.BIN)
		m.AssertExpectations(t)
	})

	t.Run("Error_Lookup", func(t *testing.T) {
		next := mocks.NewMockBINUseCase(t)
		m := &mockBusinessMetrics{}
		next.On("Lookup", ctx, "999999").Return(nil, binDomain.ErrBINNotFound).Once()
		m.On("RecordOperation", ctx, "bin", "lookup", "error").Once()
		m.On("RecordDuration", ctx, "bin", "lookup", mock.AnythingOfType("time.Duration"), "error").Once()

		_, err := NewBINUseCaseWithMetrics(next, m).Lookup(ctx, "999999")

		assert.ErrorIs(t, err, binDomain.ErrBINNotFound)
		m.AssertExpectations(t)
	})

	t.Run("Success_Import", func(t *testing.T) {
		next := mocks.NewMockBINUseCase(t)
		m := &mockBusinessMetrics{}
		r := strings.NewReader("")
		next.On("Import", ctx, r).Return(3, nil).Once()
		m.On("RecordOperation", ctx, "bin", "import", "success").Once()
		m.On("RecordDuration", ctx, "bin", "import", mock.AnythingOfType("time.Duration"), "success").Once()

		n, err := NewBINUseCaseWithMetrics(next, m).Import(ctx, r)

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		m.AssertExpectations(t)
	})
}
