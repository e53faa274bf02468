package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayedScore_FirstView(t *testing.T) {
	assert.InDelta(t, 1.0, DecayedScore(0), 0.0001)
}

func TestDecayedScore_Accumulates(t *testing.T) {
	score := 0.0
	for i := 0; i < 5; i++ {
		score = DecayedScore(score)
	}
	// 1 + 0.95 + 0.95² + 0.95³ + 0.95⁴
	assert.InDelta(t, 4.52438, score, 0.001)
}

func TestDecayedScore_ConvergesToCeiling(t *testing.T) {
	// Série géométrique : le score plafonne à 1/(1-0.95) = 20
	score := 0.0
	for i := 0; i < 10000; i++ {
		score = DecayedScore(score)
	}
	assert.InDelta(t, 20.0, score, 0.01)
	assert.LessOrEqual(t, score, 20.0)
}

func TestDecayedScore_OldScoreFades(t *testing.T) {
	// Une seule vue sur un score élevé le fait baisser
	assert.Less(t, DecayedScore(100), 100.0)
}

type fakePopularityRedis struct {
	setnxAllowed bool
	setnxErr     error
	zscoreOld    float64
	zscoreErr    error
	zadds        []redis.Z
}

func (f *fakePopularityRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(f.setnxAllowed, f.setnxErr)
}

func (f *fakePopularityRedis) ZScore(ctx context.Context, key, member string) *redis.FloatCmd {
	return redis.NewFloatResult(f.zscoreOld, f.zscoreErr)
}

func (f *fakePopularityRedis) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	f.zadds = append(f.zadds, members...)
	return redis.NewIntResult(int64(len(members)), nil)
}

func TestRecord_FirstView(t *testing.T) {
	fake := &fakePopularityRedis{setnxAllowed: true, zscoreErr: redis.Nil}
	rec := PopularityRecorder{RDB: fake}

	err := rec.Record(context.Background(), "10.0.0.1", "prod-1")

	require.NoError(t, err)
	require.Len(t, fake.zadds, 1)
	assert.InDelta(t, 1.0, fake.zadds[0].Score, 0.0001)
	assert.Equal(t, "prod-1", fake.zadds[0].Member)
}

func TestRecord_AppliesDecayToExistingScore(t *testing.T) {
	fake := &fakePopularityRedis{setnxAllowed: true, zscoreOld: 2.0}
	rec := PopularityRecorder{RDB: fake}

	err := rec.Record(context.Background(), "10.0.0.1", "prod-1")

	require.NoError(t, err)
	require.Len(t, fake.zadds, 1)
	assert.InDelta(t, 2.0*PopularityDecay+1, fake.zadds[0].Score, 0.0001)
}

func TestRecord_RateLimitedViewIgnored(t *testing.T) {
	// Même (IP, produit) dans la fenêtre : aucune écriture, aucune erreur
	fake := &fakePopularityRedis{setnxAllowed: false}
	rec := PopularityRecorder{RDB: fake}

	err := rec.Record(context.Background(), "10.0.0.1", "prod-1")

	require.NoError(t, err)
	assert.Empty(t, fake.zadds)
}

func TestRecord_LimiterDownFailsOpen(t *testing.T) {
	// Limiteur injoignable : la vue est quand même comptée
	fake := &fakePopularityRedis{setnxErr: errors.New("connexion refusée"), zscoreErr: redis.Nil}
	rec := PopularityRecorder{RDB: fake}

	err := rec.Record(context.Background(), "10.0.0.1", "prod-1")

	require.NoError(t, err)
	require.Len(t, fake.zadds, 1)
	assert.InDelta(t, 1.0, fake.zadds[0].Score, 0.0001)
}
