package service

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pangen/internal/pan/domain"
)

// parityLuhn is the parity-anchored formulation: digits whose left-based index has
// the same parity as the length are doubled.
func parityLuhn(s string) bool {
	parity := len(s) % 2
	sum := 0
	for i := 0; i < len(s); i++ {
		digit := int(s[i] - '0')
		if i%2 == parity {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum%10 == 0
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      bool
		expectedError error
	}{
		{name: "Valid_KnownLuhnNumber_4532015112830366", input: "4532015112830366", expected: true},
		{name: "Valid_Visa_4111111111111111", input: "4111111111111111", expected: true},
		{name: "Valid_Amex_378282246310005", input: "378282246310005", expected: true},
		{name: "Valid_OddLength_79927398713", input: "79927398713", expected: true},
		{name: "Valid_SingleZero", input: "0", expected: true},
		{name: "Invalid_LastDigitChanged", input: "4111111111111112", expected: false},
		{name: "Invalid_SwappedDigits", input: "79927398731", expected: false},
		{name: "Invalid_Empty", input: "", expected: false},
		{name: "Error_Letters", input: "4111a11111111111", expectedError: domain.ErrInvalidCandidate},
		{name: "Error_Wildcard", input: "411111111111111?", expectedError: domain.ErrInvalidCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := IsValid(tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, valid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, valid)
		})
	}
}

func TestIsValid_MatchesParityFormulation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for range 2000 {
		length := 1 + rng.IntN(19)
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = byte('0' + rng.IntN(10))
		}
		s := string(buf)

		valid, err := IsValid(s)
		require.NoError(t, err)
		assert.Equal(t, parityLuhn(s), valid, s)
	}
}

func TestIsValid_LastDigitSensitivity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for range 500 {
		buf := make([]byte, 15)
		for i := range buf {
			buf[i] = byte('0' + rng.IntN(10))
		}
		check, err := CheckDigit(string(buf))
		require.NoError(t, err)

		valid := string(buf) + strconv.Itoa(check)
		ok, err := IsValid(valid)
		require.NoError(t, err)
		require.True(t, ok, valid)

		bumped := string(buf) + strconv.Itoa((check+1)%10)
		ok, err = IsValid(bumped)
		require.NoError(t, err)
		assert.False(t, ok, bumped)
	}
}

func TestRemainder(t *testing.T) {
	remainder, err := Remainder("4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, 0, remainder)

	remainder, err = Remainder("4111111111111112")
	require.NoError(t, err)
	assert.Equal(t, 1, remainder)

	_, err = Remainder("41-1")
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)
}

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		partial  string
		expected int
	}{
		{partial: "7992739871", expected: 3},
		{partial: "411111111111111", expected: 1},
		{partial: "453201511283036", expected: 6},
		{partial: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.partial, func(t *testing.T) {
			digit, err := CheckDigit(tt.partial)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, digit)
		})
	}

	_, err := CheckDigit("12a")
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)
}
