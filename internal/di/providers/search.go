package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/f246632/rijeka-online/internal/config"
	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/logger"
	"github.com/f246632/rijeka-online/internal/search"
	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/store"
)

// SearchIndexHandle wraps the bleve index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the bleve full-text index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Search.IndexPath, 0o755); err != nil {
		return nil, err
	}

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Search.IndexPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(storeHandle.Store, indexHandle.Index, log.Logger), nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index when published
// articles already exist, e.g. after the index directory was wiped.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := searchService.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	page, err := storeHandle.ListArticles(ctx, store.ArticleFilter{
		Status: domain.StatusPublished,
	}, store.ListParams{Limit: 1})
	if err != nil || page.Total == 0 {
		return
	}

	log.Info("Search index is empty but published articles exist, triggering reindex",
		"article_count", page.Total,
	)

	go func() {
		count, err := searchService.Reindex(context.Background())
		if err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		log.Info("Initial search reindex completed", "documents", count)
	}()
}
