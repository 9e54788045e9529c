package observability

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

type stubChecker struct {
	status types.HealthStatus
}

func (s *stubChecker) Health(ctx context.Context) types.HealthStatus {
	return s.status
}

func testMonitor() *HealthMonitor {
	return NewHealthMonitor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthMonitorCheck(t *testing.T) {
	monitor := testMonitor()
	monitor.Register("store", &stubChecker{status: types.NewHealthStatus(types.HealthStateHealthy, "")})

	status, err := monitor.Check(context.Background(), "store")
	require.NoError(t, err)
	assert.True(t, status.IsHealthy())

	_, err = monitor.Check(context.Background(), "missing")
	assert.Error(t, err)
}

func TestHealthMonitorCheckAll(t *testing.T) {
	monitor := testMonitor()
	monitor.Register("a", &stubChecker{status: types.NewHealthStatus(types.HealthStateHealthy, "")})
	monitor.Register("b", &stubChecker{status: types.NewHealthStatus(types.HealthStateDegraded, "empty store")})

	results := monitor.CheckAll(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, types.HealthStateDegraded, results["b"].State)
}

func TestOverall(t *testing.T) {
	healthy := types.NewHealthStatus(types.HealthStateHealthy, "")
	degraded := types.NewHealthStatus(types.HealthStateDegraded, "")
	unhealthy := types.NewHealthStatus(types.HealthStateUnhealthy, "")

	assert.Equal(t, types.HealthStateHealthy,
		Overall(map[string]types.HealthStatus{"a": healthy}))
	assert.Equal(t, types.HealthStateDegraded,
		Overall(map[string]types.HealthStatus{"a": healthy, "b": degraded}))
	assert.Equal(t, types.HealthStateUnhealthy,
		Overall(map[string]types.HealthStatus{"a": degraded, "b": unhealthy}))
	assert.Equal(t, types.HealthStateHealthy, Overall(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("anything"))
}
