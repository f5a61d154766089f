package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric matching the
// given name, partial label pattern and value. The exporter adds scope labels, so
// labels are matched loosely.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_Export(t *testing.T) {
	provider, err := NewProvider("pangen_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "pangen_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "pan", "generate_batch", "success")
	bm.RecordOperation(ctx, "pan", "generate_batch", "success")
	bm.RecordOperation(ctx, "pan", "generate_batch", "error")
	bm.RecordOperation(ctx, "pan", "validate", "success")
	bm.RecordDuration(ctx, "pan", "generate_batch", 40*time.Millisecond, "success")
	bm.RecordDuration(ctx, "pan", "generate_batch", 60*time.Millisecond, "success")
	bm.RecordGenerated(ctx, "pan", "generate_batch", 7)
	bm.RecordGenerated(ctx, "pan", "generate_batch", 3)
	bm.RecordGenerated(ctx, "pan", "generate_multi", 0)

	output := scrape(t, provider)

	assertMetricLine(t, output, `pangen_test_operations_total`,
		`domain="pan".*operation="generate_batch".*status="success"`, `2`)
	assertMetricLine(t, output, `pangen_test_operations_total`,
		`domain="pan".*operation="generate_batch".*status="error"`, `1`)
	assertMetricLine(t, output, `pangen_test_operations_total`,
		`domain="pan".*operation="validate".*status="success"`, `1`)
	assertMetricLine(t, output, `pangen_test_operation_duration_seconds_count`,
		`domain="pan".*operation="generate_batch".*status="success"`, `2`)
	assertMetricLine(t, output, `pangen_test_generated_pans_total`,
		`domain="pan".*operation="generate_batch"`, `10`)
	assert.NotContains(t, output, `operation="generate_multi"`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		noOp.RecordOperation(ctx, "pan", "generate", "success")
		noOp.RecordDuration(ctx, "pan", "generate", time.Second, "error")
		noOp.RecordGenerated(ctx, "pan", "generate", 5)
	})
}
