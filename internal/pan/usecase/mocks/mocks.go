// Package mocks provides testify mock implementations of the PAN use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// MockGeneratorUseCase is a mock implementation of usecase.GeneratorUseCase.
type MockGeneratorUseCase struct {
	mock.Mock
}

// NewMockGeneratorUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockGeneratorUseCase(t *testing.T) *MockGeneratorUseCase {
	m := &MockGeneratorUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGeneratorUseCase) Validate(ctx context.Context, pan string) (*panDomain.ValidationResult, error) {
	args := m.Called(ctx, pan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*panDomain.ValidationResult), args.Error(1)
}

func (m *MockGeneratorUseCase) Generate(ctx context.Context, template string) ([]panDomain.ValidatedPAN, error) {
	args := m.Called(ctx, template)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]panDomain.ValidatedPAN), args.Error(1)
}

func (m *MockGeneratorUseCase) GenerateBatch(
	ctx context.Context,
	template string,
	count, maxAttempts int,
) ([]panDomain.ValidatedPAN, error) {
	args := m.Called(ctx, template, count, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]panDomain.ValidatedPAN), args.Error(1)
}

func (m *MockGeneratorUseCase) GenerateMulti(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	args := m.Called(ctx, templates, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(panDomain.BatchResult), args.Error(1)
}

func (m *MockGeneratorUseCase) GenerateWithMetadata(
	ctx context.Context,
	template string,
	count int,
) ([]*panDomain.PANMetadata, error) {
	args := m.Called(ctx, template, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*panDomain.PANMetadata), args.Error(1)
}

// MockOrchestratorUseCase is a mock implementation of usecase.OrchestratorUseCase.
type MockOrchestratorUseCase struct {
	mock.Mock
}

// NewMockOrchestratorUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockOrchestratorUseCase(t *testing.T) *MockOrchestratorUseCase {
	m := &MockOrchestratorUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrchestratorUseCase) GenerateForTemplates(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	args := m.Called(ctx, templates, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(panDomain.BatchResult), args.Error(1)
}

// MockHistoryUseCase is a mock implementation of usecase.HistoryUseCase.
type MockHistoryUseCase struct {
	mock.Mock
}

// NewMockHistoryUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockHistoryUseCase(t *testing.T) *MockHistoryUseCase {
	m := &MockHistoryUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryUseCase) Save(
	ctx context.Context,
	template string,
	records []*panDomain.PANMetadata,
) (uuid.UUID, error) {
	args := m.Called(ctx, template, records)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockHistoryUseCase) List(
	ctx context.Context,
	batchID uuid.UUID,
	offset, limit int,
) ([]*panDomain.GenerationRecord, error) {
	args := m.Called(ctx, batchID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*panDomain.GenerationRecord), args.Error(1)
}

// MockReferenceLookup is a mock implementation of usecase.ReferenceLookup.
type MockReferenceLookup struct {
	mock.Mock
}

// NewMockReferenceLookup creates a mock whose expectations are asserted on cleanup.
func NewMockReferenceLookup(t *testing.T) *MockReferenceLookup {
	m := &MockReferenceLookup{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReferenceLookup) Lookup(ctx context.Context, prefix string) (*panDomain.IssuerInfo, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*panDomain.IssuerInfo), args.Error(1)
}

// MockGenerationRecordRepository is a mock implementation of usecase.GenerationRecordRepository.
type MockGenerationRecordRepository struct {
	mock.Mock
}

// NewMockGenerationRecordRepository creates a mock whose expectations are asserted on cleanup.
func NewMockGenerationRecordRepository(t *testing.T) *MockGenerationRecordRepository {
	m := &MockGenerationRecordRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGenerationRecordRepository) CreateBatch(
	ctx context.Context,
	records []*panDomain.GenerationRecord,
) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockGenerationRecordRepository) ListByBatch(
	ctx context.Context,
	batchID uuid.UUID,
	offset, limit int,
) ([]*panDomain.GenerationRecord, error) {
	args := m.Called(ctx, batchID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*panDomain.GenerationRecord), args.Error(1)
}
