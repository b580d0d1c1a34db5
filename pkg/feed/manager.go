package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/newsbyte/newsbyte/pkg/domain"
)

// maxConcurrentRefresh limits how many categories refresh at once
const maxConcurrentRefresh = 3

// Manager caches fetched articles per category and refreshes them in the
// background on a fixed interval
type Manager struct {
	fetcher  *Fetcher
	interval time.Duration

	mu    sync.RWMutex
	cache map[domain.Category][]domain.Article
}

// NewManager creates a manager over the fetcher, interval controls the
// background refresh cadence
func NewManager(fetcher *Fetcher, interval time.Duration) *Manager {
	return &Manager{
		fetcher:  fetcher,
		interval: interval,
		cache:    map[domain.Category][]domain.Article{},
	}
}

// Articles returns the cached articles for a category, fetching on first
// access. A category that never fetched successfully serves samples via
// the fetcher's fallback.
func (m *Manager) Articles(ctx context.Context, category domain.Category) ([]domain.Article, error) {
	m.mu.RLock()
	cached, ok := m.cache[category]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	articles, err := m.fetcher.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[category] = articles
	m.mu.Unlock()
	return articles, nil
}

// Refresh re-fetches every known category, keeping previous results for
// categories that fail
func (m *Manager) Refresh(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefresh)

	for _, category := range domain.Categories() {
		g.Go(func() error {
			articles, err := m.fetcher.Fetch(ctx, category)
			if err != nil {
				log.Printf("[WARN] refresh failed for %s: %v", category, err)
				return nil
			}
			m.mu.Lock()
			m.cache[category] = articles
			m.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers only log failures
}

// Run refreshes the cache on the configured interval until the context is
// canceled. The first refresh happens immediately.
func (m *Manager) Run(ctx context.Context) {
	log.Printf("[INFO] feed refresh started, interval %v", m.interval)
	m.Refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] feed refresh stopped")
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}
