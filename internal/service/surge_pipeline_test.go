package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BumsooCho/trendix-ai-server/internal/model"
	"github.com/BumsooCho/trendix-ai-server/internal/repository"
)

func surgeParams(platform string) model.SurgeParams {
	return model.SurgeParams{Platform: platform, Limit: 20, Days: 3, VelocityDays: 1.0}
}

func candidateRows(now time.Time) *pgxmock.Rows {
	published := now.Add(-10 * time.Hour)
	currDate := now.Add(-1 * time.Hour)
	prevDate := now.Add(-25 * time.Hour)
	return pgxmock.NewRows([]string{
		"video_id", "platform", "title", "channel_id", "published_at", "crawled_at",
		"curr_view", "curr_date", "prev_view", "prev_date",
	}).AddRow("v1", "youtube", nil, nil, &published, now,
		int64Ptr(1500), &currDate, int64Ptr(1000), &prevDate)
}

func TestGetSurgeVideos_RanksAndPersists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := NewSurgeService(repository.NewTrendRepo(mock), nil)

	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs("youtube", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(candidateRows(time.Now().UTC()))
	mock.ExpectExec("INSERT INTO video_score").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp, err := svc.GetSurgeVideos(context.Background(), surgeParams("youtube"))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].TrendingRank)
	assert.Equal(t, int64(1500), resp.Items[0].ViewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSurgeVideos_UpsertFailureDoesNotAffectResponse(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := NewSurgeService(repository.NewTrendRepo(mock), nil)

	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs("youtube", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(candidateRows(time.Now().UTC()))
	mock.ExpectExec("INSERT INTO video_score").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("write timeout"))

	// The ranking is already computed; the failed side effect is only logged.
	resp, err := svc.GetSurgeVideos(context.Background(), surgeParams("youtube"))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSurgeVideos_EmptyCandidatesSkipsUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := NewSurgeService(repository.NewTrendRepo(mock), nil)

	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs("tiktok", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"video_id", "platform", "title", "channel_id", "published_at", "crawled_at",
			"curr_view", "curr_date", "prev_view", "prev_date",
		}))

	resp, err := svc.GetSurgeVideos(context.Background(), surgeParams("tiktok"))
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func surgeComputeSampleCount(t *testing.T) uint64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, surgeComputeDuration.Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestGetSurgeVideos_ObservesComputeDuration(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := NewSurgeService(repository.NewTrendRepo(mock), nil)

	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs("youtube", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(candidateRows(time.Now().UTC()))
	mock.ExpectExec("INSERT INTO video_score").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	before := surgeComputeSampleCount(t)

	_, err = svc.GetSurgeVideos(context.Background(), surgeParams("youtube"))
	require.NoError(t, err)

	// One uncached request = exactly one pipeline observation.
	assert.Equal(t, before+1, surgeComputeSampleCount(t))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSurgeVideos_ResolverErrorPropagates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := NewSurgeService(repository.NewTrendRepo(mock), nil)

	mock.ExpectQuery("LEFT JOIN LATERAL").
		WithArgs("youtube", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("query cancelled"))

	_, err = svc.GetSurgeVideos(context.Background(), surgeParams("youtube"))
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
