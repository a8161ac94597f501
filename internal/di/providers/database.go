package providers

import (
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/f246632/rijeka-online/internal/config"
	"github.com/f246632/rijeka-online/internal/logger"
	"github.com/f246632/rijeka-online/internal/store/sqlite"
)

// StoreHandle wraps the sqlite store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	st, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database opened", "path", cfg.Database.Path)

	return &StoreHandle{Store: st}, nil
}
