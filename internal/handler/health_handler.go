package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/observability"
)

const readyTimeout = 5 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health returns basic health check
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status    string         `json:"status"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Ready returns readiness of the thought store
func Ready(store Pinger, driver string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		check := checkStore(ctx, store, driver)

		status, code := "ready", http.StatusOK
		if check.Status != "up" {
			status, code = "not_ready", http.StatusServiceUnavailable
		}

		writeJSON(w, code, map[string]any{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"checks": map[string]HealthCheckResult{
				"store": check,
			},
		})
	}
}

// checkStore pings the store and measures the round trip
func checkStore(ctx context.Context, store Pinger, driver string) HealthCheckResult {
	start := time.Now()
	err := store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		observability.FromContext(ctx).Warn("store ping failed", "driver", driver, "error", err)
		return HealthCheckResult{
			Status:    "down",
			LatencyMs: latency.Milliseconds(),
			Metadata:  map[string]any{"driver": driver},
			Error:     pingFailure(err),
		}
	}

	return HealthCheckResult{
		Status:    "up",
		LatencyMs: latency.Milliseconds(),
		Metadata:  map[string]any{"driver": driver},
	}
}

// pingFailure keeps driver text out of the public readiness body
func pingFailure(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded.Error()
	case errors.Is(err, context.Canceled):
		return context.Canceled.Error()
	default:
		return domain.ErrStoreUnavailable.Error()
	}
}
