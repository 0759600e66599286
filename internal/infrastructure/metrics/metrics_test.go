package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Seguros-api/internal/infrastructure/metrics"
)

func TestMetrics_CountersIncrement(t *testing.T) {
	m := metrics.New()

	m.ClaimCreated("auto")
	m.ClaimCreated("auto")
	m.ClaimDecided("approved")
	m.PolicyStatusChanged("active", "cancelled")
	m.DeletionBlocked("client")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClaimsCreated.WithLabelValues("auto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClaimDecisions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PolicyTransitions.WithLabelValues("active", "cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeletionsBlocked.WithLabelValues("client")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ClaimCreated("life")
		m.PolicyRenewed("expired")
	})
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := metrics.New()
	m.PolicyCreated("home")

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `seguros_policies_created_total{product_type="home"} 1`)
}
