// Package mocks provides testify mock implementations of the BIN use case interfaces.
package mocks

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// MockBINRepository is a mock implementation of usecase.BINRepository.
type MockBINRepository struct {
	mock.Mock
}

// NewMockBINRepository creates a mock whose expectations are asserted on cleanup.
func NewMockBINRepository(t *testing.T) *MockBINRepository {
	m := &MockBINRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBINRepository) Upsert(ctx context.Context, record *binDomain.BINRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBINRepository) FindLongestPrefix(ctx context.Context, number string) (*binDomain.BINRecord, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*binDomain.BINRecord), args.Error(1)
}

func (m *MockBINRepository) ListPrefixes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBINUseCase is a mock implementation of usecase.BINUseCase.
type MockBINUseCase struct {
	mock.Mock
}

// NewMockBINUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockBINUseCase(t *testing.T) *MockBINUseCase {
	m := &MockBINUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBINUseCase) Lookup(ctx context.Context, number string) (*panDomain.IssuerInfo, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*panDomain.IssuerInfo), args.Error(1)
}

func (m *MockBINUseCase) Find(ctx context.Context, number string) (*binDomain.BINRecord, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*binDomain.BINRecord), args.Error(1)
}

func (m *MockBINUseCase) Import(ctx context.Context, r io.Reader) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *MockBINUseCase) RangeTable(ctx context.Context) (*panDomain.IssuerRangeTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*panDomain.IssuerRangeTable), args.Error(1)
}
