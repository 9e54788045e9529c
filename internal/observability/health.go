package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// HealthChecker is implemented by components that can report health.
type HealthChecker interface {
	Health(ctx context.Context) types.HealthStatus
}

// componentState tracks the last observed status of one component so
// state transitions can be logged.
type componentState struct {
	checker    HealthChecker
	lastStatus types.HealthStatus
}

// HealthMonitor aggregates health checks across registered components.
// Safe for concurrent use.
type HealthMonitor struct {
	logger     *slog.Logger
	mu         sync.RWMutex
	components map[string]*componentState
}

// NewHealthMonitor creates a health monitor.
func NewHealthMonitor(logger *slog.Logger) *HealthMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthMonitor{
		logger:     logger,
		components: make(map[string]*componentState),
	}
}

// Register adds a component. An existing component with the same name
// is replaced.
func (h *HealthMonitor) Register(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.components[name] = &componentState{
		checker:    checker,
		lastStatus: types.NewHealthStatus(types.HealthStateUnhealthy, "not yet checked"),
	}
}

// Check runs the health check for one component.
func (h *HealthMonitor) Check(ctx context.Context, name string) (types.HealthStatus, error) {
	h.mu.RLock()
	state, exists := h.components[name]
	h.mu.RUnlock()

	if !exists {
		return types.HealthStatus{}, fmt.Errorf("component %q is not registered", name)
	}

	status := state.checker.Health(ctx)
	h.updateState(name, state, status)
	return status, nil
}

// CheckAll runs the health check for every registered component.
func (h *HealthMonitor) CheckAll(ctx context.Context) map[string]types.HealthStatus {
	h.mu.RLock()
	snapshot := make(map[string]*componentState, len(h.components))
	for name, state := range h.components {
		snapshot[name] = state
	}
	h.mu.RUnlock()

	results := make(map[string]types.HealthStatus, len(snapshot))
	for name, state := range snapshot {
		status := state.checker.Health(ctx)
		results[name] = status
		h.updateState(name, state, status)
	}
	return results
}

// Overall collapses a CheckAll result to the worst observed state.
func Overall(statuses map[string]types.HealthStatus) types.HealthState {
	overall := types.HealthStateHealthy
	for _, status := range statuses {
		switch status.State {
		case types.HealthStateUnhealthy:
			return types.HealthStateUnhealthy
		case types.HealthStateDegraded:
			overall = types.HealthStateDegraded
		}
	}
	return overall
}

// StartPeriodicCheck checks all components at the given interval until
// the context is cancelled.
func (h *HealthMonitor) StartPeriodicCheck(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.CheckAll(ctx)
		}
	}
}

func (h *HealthMonitor) updateState(name string, state *componentState, status types.HealthStatus) {
	h.mu.Lock()
	previous := state.lastStatus.State
	state.lastStatus = status
	h.mu.Unlock()

	if previous == status.State {
		return
	}

	args := []any{
		"component", name,
		"previous_state", previous.String(),
		"current_state", status.State.String(),
		"message", status.Message,
	}

	switch {
	case previous == types.HealthStateHealthy:
		h.logger.Error("component health degraded", args...)
	case status.State == types.HealthStateHealthy:
		h.logger.Info("component health recovered", args...)
	default:
		h.logger.Warn("component health state changed", args...)
	}
}
