package service

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
	"github.com/BumsooCho/trendix-ai-server/internal/repository"
)

var (
	scoreUpsertFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendix_score_upsert_failures_total",
		Help: "Total failed trend score batch upserts.",
	})
	surgeComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trendix_surge_compute_duration_seconds",
		Help:    "Duration of the surge resolve-score-persist pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)

// Surge score composition weights. The four terms are scaled to comparable
// magnitudes: relative growth dominates, raw velocity is damped because view
// counts are large, absolute popularity is log-damped, and the freshness term
// is bounded near 75 for brand-new content.
const (
	growthWeight     = 100.0
	velocityDivisor  = 1000.0
	popularityWeight = 0.1
	freshnessWeight  = 50.0

	freshnessDecayRate        = 0.05
	freshnessBonus            = 1.5
	freshnessBonusMaxAgeHours = 24.0

	// Age assigned when a video has neither publish nor crawl timestamp.
	// Large enough that the freshness term underflows to zero.
	unknownAgeHours = 1e6
)

// SurgeService resolves candidate videos, computes their surge scores and
// persists the winners' trend scores.
type SurgeService struct {
	repo  *repository.TrendRepo
	cache *CacheService
}

func NewSurgeService(repo *repository.TrendRepo, cache *CacheService) *SurgeService {
	return &SurgeService{repo: repo, cache: cache}
}

// GetSurgeVideos runs the full surge pipeline for one request: resolve
// candidates, score, rank, truncate to the limit, then upsert the winners'
// trend scores in one batch. The upsert is a side effect — if it fails the
// ranking is still returned and the failure is only logged.
func (s *SurgeService) GetSurgeVideos(ctx context.Context, params model.SurgeParams) (*model.SurgeResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSurge(ctx, params)
		if err != nil {
			log.Printf("cache: surge get error: %v", err)
		} else if cached != nil {
			var resp model.SurgeResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.computeAndPersist(ctx, params, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSurge(ctx, params, resp); err != nil {
			log.Printf("cache: surge set error: %v", err)
		}
	}

	return resp, nil
}

// computeAndPersist is the uncached pipeline. Also used by the refresh
// worker, which warms scores without going through the cache-aside path.
// The compute histogram is observed here so cache hits never count.
func (s *SurgeService) computeAndPersist(ctx context.Context, params model.SurgeParams, now time.Time) (*model.SurgeResponse, error) {
	start := time.Now()
	defer func() {
		surgeComputeDuration.Observe(time.Since(start).Seconds())
	}()

	candidates, err := s.repo.SurgeCandidates(ctx, params.Platform, params.Days, now)
	if err != nil {
		return nil, err
	}

	ranked := Rank(candidates, params.VelocityDays, now, params.Limit)

	if len(ranked) > 0 {
		entries := make([]model.TrendScoreEntry, len(ranked))
		for i, v := range ranked {
			entries[i] = model.TrendScoreEntry{VideoID: v.VideoID, TrendScore: v.SurgeScore}
		}
		if err := s.repo.UpsertTrendScores(ctx, entries); err != nil {
			scoreUpsertFailures.Inc()
			log.Printf("surge: trend score upsert failed (%d rows): %v", len(entries), err)
		}
	}

	return &model.SurgeResponse{Items: ranked}, nil
}

// Rank scores every candidate, sorts by surge score descending (ties broken
// by video_id ascending so results are deterministic) and keeps the top
// `limit` entries with 1-based trending ranks.
func Rank(candidates []model.SurgeCandidate, velocityDays float64, now time.Time, limit int) []model.SurgeVideo {
	scored := make([]model.SurgeVideo, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Score(c, velocityDays, now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].SurgeScore != scored[j].SurgeScore {
			return scored[i].SurgeScore > scored[j].SurgeScore
		}
		return scored[i].VideoID < scored[j].VideoID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].TrendingRank = i + 1
	}
	return scored
}

// Score computes the surge metrics for a single candidate. Missing snapshots
// count as zero views; the video still gets scored on freshness alone.
func Score(c model.SurgeCandidate, velocityDays float64, now time.Time) model.SurgeVideo {
	var currView, prevView int64
	if c.CurrView != nil {
		currView = *c.CurrView
	}
	if c.PrevView != nil {
		prevView = *c.PrevView
	}

	deltaViews := currView - prevView
	viewVelocity := float64(deltaViews) / velocityDays

	// No prior baseline means zero growth rate regardless of the delta.
	var growthRate float64
	if prevView > 0 {
		growthRate = float64(deltaViews) / float64(prevView)
	}

	freshness := Freshness(AgeHours(c.PublishedAt, c.CrawledAt, now))

	breakdown := model.SurgeBreakdown{
		GrowthFactor:     growthRate * growthWeight,
		VelocityFactor:   viewVelocity / velocityDivisor,
		PopularityFactor: math.Log(float64(currView)+10) * popularityWeight,
		FreshnessFactor:  freshness * freshnessWeight,
	}
	surgeScore := breakdown.GrowthFactor + breakdown.VelocityFactor +
		breakdown.PopularityFactor + breakdown.FreshnessFactor

	return model.SurgeVideo{
		VideoID:              c.VideoID,
		Platform:             c.Platform,
		Title:                c.Title,
		ChannelID:            c.ChannelID,
		PublishedAt:          c.PublishedAt,
		SurgeScore:           surgeScore,
		ViewCount:            currView,
		ViewCountChange:      deltaViews,
		GrowthRatePercentage: growthRate * 100,
		Breakdown:            breakdown,
	}
}

// AgeHours returns the video age in hours, preferring the publish timestamp
// and falling back to the crawl timestamp.
func AgeHours(publishedAt *time.Time, crawledAt time.Time, now time.Time) float64 {
	switch {
	case publishedAt != nil:
		return now.Sub(*publishedAt).Hours()
	case !crawledAt.IsZero():
		return now.Sub(crawledAt).Hours()
	default:
		return unknownAgeHours
	}
}

// Freshness is exponential recency decay (halving roughly every 14 hours)
// with a 1.5x bonus for content under a day old.
func Freshness(ageHours float64) float64 {
	bonus := 1.0
	if ageHours <= freshnessBonusMaxAgeHours {
		bonus = freshnessBonus
	}
	return math.Exp(-freshnessDecayRate*ageHours) * bonus
}
