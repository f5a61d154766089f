package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
	"github.com/allisson/pangen/internal/pan/http/dto"
	panMocks "github.com/allisson/pangen/internal/pan/usecase/mocks"
)

func TestRunValidate(t *testing.T) {
	ctx := context.Background()
	result := &panDomain.ValidationResult{
		PAN:          "4111111111111111",
		Valid:        true,
		InRange:      true,
		MatchedRange: "4",
		Brand:        panDomain.BrandVisa,
		BIN:          "411111",
		LastFour:     "1111",
	}

	t.Run("Success_TextOutput", func(t *testing.T) {
		generator := panMocks.NewMockGeneratorUseCase(t)
		generator.On("Validate", mock.Anything, "4111111111111111").Return(result, nil).Once()

		var out bytes.Buffer
		err := RunValidate(ctx, generator, discardLogger(), &out, "4111111111111111", FormatText)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "PAN 4111111111111111 is valid")
		assert.Contains(t, out.String(), "BIN: 411111")
		assert.Contains(t, out.String(), "In issuer range: true")
	})

	t.Run("Success_JSONOutput", func(t *testing.T) {
		generator := panMocks.NewMockGeneratorUseCase(t)
		generator.On("Validate", mock.Anything, "4111111111111111").Return(result, nil).Once()

		var out bytes.Buffer
		err := RunValidate(ctx, generator, discardLogger(), &out, "4111111111111111", FormatJSON)
		require.NoError(t, err)

		var response dto.ValidationResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &response))
		assert.Equal(t, dto.MapValidationResultToResponse(result), response)
	})

	t.Run("Success_InvalidPAN", func(t *testing.T) {
		generator := panMocks.NewMockGeneratorUseCase(t)
		generator.On("Validate", mock.Anything, "4111111111111112").
			Return(&panDomain.ValidationResult{PAN: "4111111111111112", Brand: panDomain.BrandVisa}, nil).
			Once()

		var out bytes.Buffer
		err := RunValidate(ctx, generator, discardLogger(), &out, "4111111111111112", FormatText)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "is invalid")
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		generator := panMocks.NewMockGeneratorUseCase(t)
		generator.On("Validate", mock.Anything, "12ab").Return(nil, errors.New("boom")).Once()

		var out bytes.Buffer
		err := RunValidate(ctx, generator, discardLogger(), &out, "12ab", FormatText)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to validate PAN")
		assert.Empty(t, out.String())
	})
}
