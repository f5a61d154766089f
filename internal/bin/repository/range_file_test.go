package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

func TestParseIssuerRanges(t *testing.T) {
	t.Run("Success_OrdersLongestFirst", func(t *testing.T) {
		doc := "ranges:\n  - \"4\"\n  - \"51\"\n  - \"6011\"\n  - \"51\"\n"

		table, err := ParseIssuerRanges(strings.NewReader(doc))

		require.NoError(t, err)
		assert.Equal(t, []string{"6011", "51", "4"}, table.Prefixes())
	})

	t.Run("Error_EmptyDocument", func(t *testing.T) {
		_, err := ParseIssuerRanges(strings.NewReader(""))

		assert.ErrorIs(t, err, binDomain.ErrInvalidRangeFile)
	})

	t.Run("Error_NoRanges", func(t *testing.T) {
		_, err := ParseIssuerRanges(strings.NewReader("ranges: []\n"))

		assert.ErrorIs(t, err, binDomain.ErrInvalidRangeFile)
	})

	t.Run("Error_UnknownField", func(t *testing.T) {
		_, err := ParseIssuerRanges(strings.NewReader("prefixes:\n  - \"4\"\n"))

		assert.ErrorIs(t, err, binDomain.ErrInvalidRangeFile)
	})

	t.Run("Error_NonNumericPrefix", func(t *testing.T) {
		_, err := ParseIssuerRanges(strings.NewReader("ranges:\n  - \"4x\"\n"))

		assert.ErrorIs(t, err, panDomain.ErrInvalidIssuerRange)
	})
}

func TestLoadIssuerRangeFile(t *testing.T) {
	t.Run("Success_FromDisk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ranges.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ranges: [\"34\", \"37\"]\n"), 0o600))

		table, err := LoadIssuerRangeFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"34", "37"}, table.Prefixes())
	})

	t.Run("Error_MissingFile", func(t *testing.T) {
		_, err := LoadIssuerRangeFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}
