package service

import (
	"testing"

	"github.com/BumsooCho/trendix-ai-server/internal/middleware"
)

func TestRefreshWorker_EnqueueDedupes(t *testing.T) {
	w := &RefreshWorker{pending: make(map[string]struct{})}

	w.enqueue("youtube")
	w.enqueue("youtube")
	w.enqueue("youtube")
	w.enqueue("tiktok")

	batch := w.drain()
	if len(batch) != 2 {
		t.Fatalf("drained %d platforms, want 2", len(batch))
	}
	if _, ok := batch["youtube"]; !ok {
		t.Error("youtube missing from batch")
	}
	if _, ok := batch["tiktok"]; !ok {
		t.Error("tiktok missing from batch")
	}
}

func TestRefreshWorker_DrainEmptiesPending(t *testing.T) {
	w := &RefreshWorker{pending: make(map[string]struct{})}

	w.enqueue("youtube")
	if batch := w.drain(); len(batch) != 1 {
		t.Fatalf("drained %d platforms, want 1", len(batch))
	}

	// Nothing pending → nil, so the flush loop can skip the cycle.
	if batch := w.drain(); batch != nil {
		t.Errorf("second drain = %v, want nil", batch)
	}
}

func TestRefreshWorker_UsesAPIDefaults(t *testing.T) {
	// Background refreshes must warm exactly the ranking a default API
	// request reads, or the cache invalidation buys nothing.
	if refreshLimit != middleware.DefaultSurgeLimit {
		t.Errorf("refresh limit = %d, want API default %d", refreshLimit, middleware.DefaultSurgeLimit)
	}
	if refreshDays != middleware.DefaultSurgeDays {
		t.Errorf("refresh days = %d, want API default %d", refreshDays, middleware.DefaultSurgeDays)
	}
	if refreshVelocityDays != middleware.DefaultVelocityDays {
		t.Errorf("refresh velocity days = %v, want API default %v", refreshVelocityDays, middleware.DefaultVelocityDays)
	}
}
