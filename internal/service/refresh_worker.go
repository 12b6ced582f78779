package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
	"github.com/BumsooCho/trendix-ai-server/internal/model"
)

// Background refreshes warm the same ranking a default API request serves,
// so the parameters are the API defaults, not separate knobs.
const (
	refreshLimit        = middleware.DefaultSurgeLimit
	refreshDays         = middleware.DefaultSurgeDays
	refreshVelocityDays = middleware.DefaultVelocityDays
)

// RefreshWorker listens for PostgreSQL NOTIFY on the 'snapshot_changes'
// channel (payload = platform, sent by the ingestion crawler after each
// snapshot batch) and recomputes surge scores in batched windows. If a crawl
// run lands hundreds of snapshots for one platform within the window, the
// ranking is recomputed once.
type RefreshWorker struct {
	pool     *pgxpool.Pool
	surgeSvc *SurgeService
	cache    *CacheService
	batchMs  time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // platforms waiting for a refresh
}

// NewRefreshWorker creates a surge score refresh worker.
func NewRefreshWorker(pool *pgxpool.Pool, surgeSvc *SurgeService, cache *CacheService) *RefreshWorker {
	return &RefreshWorker{
		pool:     pool,
		surgeSvc: surgeSvc,
		cache:    cache,
		batchMs:  10 * time.Second,
		pending:  make(map[string]struct{}),
	}
}

// Start begins listening for snapshot_changes notifications and processing
// batches. Blocks until the context is cancelled.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("refresh-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("refresh-worker: stopping (context cancelled)")
				return
			}
			log.Printf("refresh-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("refresh-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on snapshot_changes,
// and collects notified platforms into the pending set.
func (w *RefreshWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN snapshot_changes")
	if err != nil {
		return err
	}
	log.Println("refresh-worker: listening on snapshot_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		platform := notification.Payload
		if platform == "" {
			continue
		}

		w.enqueue(platform)
	}
}

func (w *RefreshWorker) enqueue(platform string) {
	w.mu.Lock()
	w.pending[platform] = struct{}{}
	w.mu.Unlock()
}

// drain swaps out the pending set and returns its contents.
func (w *RefreshWorker) drain() map[string]struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	batch := w.pending
	w.pending = make(map[string]struct{})
	return batch
}

// flushLoop periodically drains the pending set and refreshes scores.
func (w *RefreshWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush recomputes and persists the surge ranking for each pending platform,
// then invalidates the cached rankings so the next read sees fresh scores.
func (w *RefreshWorker) flush(ctx context.Context) {
	batch := w.drain()
	if batch == nil {
		return
	}

	refreshed := 0
	for platform := range batch {
		params := model.SurgeParams{
			Platform:     platform,
			Limit:        refreshLimit,
			Days:         refreshDays,
			VelocityDays: refreshVelocityDays,
		}
		if _, err := w.surgeSvc.computeAndPersist(ctx, params, time.Now().UTC()); err != nil {
			log.Printf("refresh-worker: refresh error for %s: %v", platform, err)
			continue
		}

		if w.cache != nil {
			if err := w.cache.InvalidateSurge(ctx, platform); err != nil {
				log.Printf("refresh-worker: cache invalidate error for %s: %v", platform, err)
			}
		}

		refreshed++
	}

	if refreshed > 0 {
		log.Printf("refresh-worker: batch complete, %d platforms refreshed (from %d notifications)",
			refreshed, len(batch))
	}
}
