package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewHealthUsecase runs the named checks concurrently. A nil check marks the
// dependency as not configured without failing overall health.
func NewHealthUsecase(checks map[string]HealthCheck) domain.HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu      sync.Mutex
		healthy = true
		out     = map[string]string{"status": "ok"}
	)

	// Checks never return errors to the group so every one of them reports.
	var g errgroup.Group
	for _, name := range names {
		name, check := name, u.checks[name]
		g.Go(func() error {
			status := "ok"
			if check == nil {
				status = "not_configured"
			} else if err := check(ctx); err != nil {
				// The endpoint is public; the cause only goes to the log.
				logger.Log.Error("Health check failed", "dependency", name, "error", err)
				status = "error"
			}
			mu.Lock()
			out[name] = status
			if status != "ok" && status != "not_configured" {
				healthy = false
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !healthy {
		out["status"] = "degraded"
	}
	return out, healthy
}
