package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBrand(t *testing.T) {
	tests := []struct {
		name     string
		pan      string
		expected Brand
	}{
		{name: "Success_Visa", pan: "4111111111111111", expected: BrandVisa},
		{name: "Success_Mastercard51", pan: "5105105105105100", expected: BrandMastercard},
		{name: "Success_Mastercard55", pan: "5555555555554444", expected: BrandMastercard},
		{name: "Success_Amex34", pan: "343434343434343", expected: BrandAmex},
		{name: "Success_Amex37", pan: "378282246310005", expected: BrandAmex},
		{name: "Success_UnknownFiveBand", pan: "5000000000000000", expected: BrandUnknown},
		{name: "Success_UnknownDiscover", pan: "6011111111111117", expected: BrandUnknown},
		{name: "Success_UnknownSingleFive", pan: "5", expected: BrandUnknown},
		{name: "Success_UnknownEmpty", pan: "", expected: BrandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBrand(tt.pan))
		})
	}
}

func TestParseBrand(t *testing.T) {
	tests := []struct {
		input    string
		expected Brand
	}{
		{input: "VISA", expected: BrandVisa},
		{input: " visa ", expected: BrandVisa},
		{input: "Visa Electron", expected: BrandVisa},
		{input: "MasterCard", expected: BrandMastercard},
		{input: "master card", expected: BrandMastercard},
		{input: "MC", expected: BrandMastercard},
		{input: "AMEX", expected: BrandAmex},
		{input: "American Express", expected: BrandAmex},
		{input: "american_express", expected: BrandAmex},
		{input: "Discover", expected: BrandUnknown},
		{input: "", expected: BrandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBrand(tt.input))
		})
	}
}
