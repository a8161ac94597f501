// Package scheduler promotes due scheduled articles to published in the
// background and purges expired sessions along the way.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/store"
)

// dueBatchLimit caps how many articles one sweep promotes.
const dueBatchLimit = 50

// Scheduler runs a periodic sweep over scheduled articles whose publication
// instant has passed. Promotion goes through the same compare-and-swap the
// manual transition uses, so a sweep racing an editor (or the lazy promote
// on the public read path) is harmless: one side wins, the other sees a
// conflict and moves on.
type Scheduler struct {
	store    store.Store
	search   *service.SearchService
	auth     *service.AuthService
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. search and auth may be nil in tests.
func New(st store.Store, search *service.SearchService, auth *service.AuthService, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    st,
		search:   search,
		auth:     auth,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop. The first sweep runs immediately so a
// restart doesn't delay overdue publications by a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()

	s.logger.Info("publication scheduler started", "interval", s.interval)
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("publication scheduler stopped")
}

// sweep promotes every due article and purges expired sessions.
func (s *Scheduler) sweep(ctx context.Context) {
	promoted, err := s.PromoteDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("publication sweep failed", "error", err)
	} else if promoted > 0 {
		s.logger.Info("scheduled articles published", "count", promoted)
	}

	if s.auth != nil {
		if _, err := s.auth.PurgeExpiredSessions(ctx); err != nil {
			s.logger.Error("session purge failed", "error", err)
		}
	}
}

// PromoteDue publishes every scheduled article due at the given instant and
// returns how many it promoted. Exported so the admin API can trigger a
// sweep on demand.
func (s *Scheduler) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.ListDueArticles(ctx, now, dueBatchLimit)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, a := range due {
		err := s.store.UpdateArticleStatus(ctx, a.ID, domain.StatusScheduled, domain.StatusPublished, a.PublishedAt)
		switch {
		case err == nil:
			promoted++
			s.indexArticle(ctx, a.ID)
			s.logger.Info("scheduled article published", "article_id", a.ID, "slug", a.Slug)
		case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrNotFound):
			// Someone else moved the article since we listed it.
			continue
		default:
			return promoted, err
		}
	}

	return promoted, nil
}

// indexArticle adds a freshly promoted article to the search index.
func (s *Scheduler) indexArticle(ctx context.Context, articleID string) {
	if s.search == nil {
		return
	}

	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		s.logger.Warn("promoted article vanished before indexing", "article_id", articleID, "error", err)
		return
	}
	if err := s.search.IndexArticle(ctx, a); err != nil {
		s.logger.Warn("failed to index promoted article", "article_id", articleID, "error", err)
	}
}
