package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/f246632/rijeka-online/internal/config"
	"github.com/f246632/rijeka-online/internal/logger"
	"github.com/f246632/rijeka-online/internal/scheduler"
	"github.com/f246632/rijeka-online/internal/service"
)

// SchedulerHandle wraps the publish scheduler with shutdown capability.
type SchedulerHandle struct {
	*scheduler.Scheduler
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideScheduler provides the background sweeper that promotes due
// scheduled articles and purges expired sessions.
func ProvideScheduler(i do.Injector) (*SchedulerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*logger.Logger](i)

	sched := scheduler.New(storeHandle.Store, searchService, authService, cfg.Publish.SweepInterval, log.Logger)
	sched.Start(context.Background())

	log.Info("Publish scheduler started", "interval", cfg.Publish.SweepInterval)

	return &SchedulerHandle{Scheduler: sched}, nil
}
