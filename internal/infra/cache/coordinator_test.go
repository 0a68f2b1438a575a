package cache

import (
	"context"
	"testing"
	"time"

	"techbot/internal/domain/dto"
	"techbot/internal/infra/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewCoordinator(logger.NewLogger(context.Background(), false), rdb), server
}

func TestQueryHashDeterministic(t *testing.T) {
	cc, _ := newTestCoordinator(t)

	a := cc.QueryHash("Tell me about your pricing")
	b := cc.QueryHash("Tell me about your pricing")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestQueryHashNormalizes(t *testing.T) {
	cc, _ := newTestCoordinator(t)

	base := cc.QueryHash("tell me about pricing")
	assert.Equal(t, base, cc.QueryHash("  Tell   Me ABOUT pricing  "))
	assert.NotEqual(t, base, cc.QueryHash("tell me about billing"))
}

func TestResponseRoundTrip(t *testing.T) {
	cc, _ := newTestCoordinator(t)
	ctx := context.Background()
	hash := cc.QueryHash("pricing")

	_, ok := cc.ResponseLookup(ctx, hash)
	assert.False(t, ok)

	output := dto.GenerationOutput{Answer: []string{"summary", "• detail"}, FutureActions: []string{"Book a demo"}}
	cc.ResponseStore(hash, output)

	require.Eventually(t, func() bool {
		got, ok := cc.ResponseLookup(ctx, hash)
		return ok && assert.ObjectsAreEqual(output, got)
	}, time.Second, 10*time.Millisecond, "background write should land")
}

func TestEmbeddingRoundTrip(t *testing.T) {
	cc, _ := newTestCoordinator(t)
	ctx := context.Background()
	hash := cc.QueryHash("pricing")

	vector := []float64{0.25, -0.5, 1.0}
	cc.EmbeddingStore(hash, vector)

	require.Eventually(t, func() bool {
		got, ok := cc.EmbeddingLookup(ctx, hash)
		return ok && assert.ObjectsAreEqual(vector, got)
	}, time.Second, 10*time.Millisecond)
}

func TestNamespacesAreDisjoint(t *testing.T) {
	cc, server := newTestCoordinator(t)
	ctx := context.Background()
	hash := cc.QueryHash("pricing")

	cc.ResponseStore(hash, dto.GenerationOutput{Answer: []string{"a"}})
	cc.EmbeddingStore(hash, []float64{1})

	require.Eventually(t, func() bool {
		return server.Exists(responseNamespace+hash) && server.Exists(embeddingNamespace+hash)
	}, time.Second, 10*time.Millisecond)

	// A response entry never satisfies an embedding lookup and vice versa.
	_, ok := cc.EmbeddingLookup(ctx, "missing")
	assert.False(t, ok)
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	cc, server := newTestCoordinator(t)
	ctx := context.Background()
	hash := cc.QueryHash("pricing")

	cc.ResponseStore(hash, dto.GenerationOutput{Answer: []string{"a"}})
	cc.EmbeddingStore(hash, []float64{1})

	require.Eventually(t, func() bool {
		return server.Exists(responseNamespace+hash) && server.Exists(embeddingNamespace+hash)
	}, time.Second, 10*time.Millisecond)

	// After an hour the response is gone but the embedding survives.
	server.FastForward(ResponseTTL + time.Minute)
	_, ok := cc.ResponseLookup(ctx, hash)
	assert.False(t, ok)
	_, ok = cc.EmbeddingLookup(ctx, hash)
	assert.True(t, ok)

	// After a day the embedding expires too.
	server.FastForward(EmbeddingTTL)
	_, ok = cc.EmbeddingLookup(ctx, hash)
	assert.False(t, ok)
}

func TestCacheFailureDegradesToMiss(t *testing.T) {
	cc, server := newTestCoordinator(t)
	ctx := context.Background()
	server.Close()

	_, ok := cc.ResponseLookup(ctx, "anyhash")
	assert.False(t, ok)
	_, ok = cc.EmbeddingLookup(ctx, "anyhash")
	assert.False(t, ok)

	// Writes against a dead store must not panic or block the caller.
	cc.ResponseStore("anyhash", dto.GenerationOutput{Answer: []string{"a"}})
	cc.EmbeddingStore("anyhash", []float64{1})
}

func TestUndecodableEntryIsMiss(t *testing.T) {
	cc, server := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, server.Set(responseNamespace+"bad", "{not json"))
	_, ok := cc.ResponseLookup(ctx, "bad")
	assert.False(t, ok)
}
