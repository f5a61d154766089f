package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/pangen/internal/httputil"
)

func newQueryContext(url string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedOffset int
		expectedLimit  int
		expectError    bool
	}{
		{name: "default values", url: "/", expectedOffset: 0, expectedLimit: 100},
		{name: "custom values", url: "/?offset=10&limit=20", expectedOffset: 10, expectedLimit: 20},
		{name: "max limit", url: "/?limit=1000", expectedLimit: 1000},
		{name: "offset negative", url: "/?offset=-1", expectError: true},
		{name: "offset not an integer", url: "/?offset=abc", expectError: true},
		{name: "limit zero", url: "/?limit=0", expectError: true},
		{name: "limit exceeds max", url: "/?limit=1001", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, err := httputil.ParsePagination(newQueryContext(tt.url))

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestParseFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{url: "/", expected: httputil.FormatJSON},
		{url: "/?format=csv", expected: httputil.FormatCSV},
		{url: "/?format=lines", expected: httputil.FormatLines},
		{url: "/?format=xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			format, err := httputil.ParseFormat(newQueryContext(tt.url))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}
