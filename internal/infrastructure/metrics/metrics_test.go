package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/metrics"
)

func TestObserveDecision(t *testing.T) {
	m := metrics.New("restaurante")
	m.ObserveDecision(access.ResourceUser, access.ActionCreate, "")
	m.ObserveDecision(access.ResourceUser, access.ActionCreate, access.CodeRoleNotPermitted)
	m.ObserveDecision(access.ResourceUser, access.ActionCreate, access.CodeRoleNotPermitted)

	n, err := testutil.GatherAndCount(m.Registry(), "restaurante_access_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := metrics.New("restaurante")
	m.ObserveHTTP("GET", "/api/users", 200, 15*time.Millisecond)
	m.ObserveDecision(access.ResourceRestaurant, access.ActionRead, "")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `restaurante_http_requests_total{method="GET",route="/api/users",status="200"} 1`)
	assert.Contains(t, string(body), `restaurante_access_decisions_total{action="read",outcome="allowed",resource="restaurant"} 1`)
}
