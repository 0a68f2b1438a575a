package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"techbot/internal/domain/dto"
	"techbot/internal/infra/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	embeddingNamespace = "embedding:"
	responseNamespace  = "response:"

	// Embeddings are stable for a given text, responses go stale with the
	// document corpus.
	EmbeddingTTL = 24 * time.Hour
	ResponseTTL  = 1 * time.Hour

	storeTimeout = 3 * time.Second
)

// Coordinator derives deterministic cache keys and mediates reads and
// writes for both namespaces. A Redis failure is never surfaced: reads
// degrade to misses, writes run in the background and only log.
type Coordinator struct {
	Logger *logger.Logger
	Redis  *redis.Client
}

func NewCoordinator(log *logger.Logger, rdb *redis.Client) *Coordinator {
	return &Coordinator{Logger: log, Redis: rdb}
}

// QueryHash digests the normalized query text. The same hash keys both
// namespaces, so it is computed once per request and reused.
func (cc *Coordinator) QueryHash(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (cc *Coordinator) ResponseLookup(ctx context.Context, hash string) (dto.GenerationOutput, bool) {
	var output dto.GenerationOutput
	ok := cc.lookup(ctx, responseNamespace+hash, &output)
	return output, ok
}

func (cc *Coordinator) ResponseStore(hash string, output dto.GenerationOutput) {
	cc.storeAsync(responseNamespace+hash, output, ResponseTTL)
}

func (cc *Coordinator) EmbeddingLookup(ctx context.Context, hash string) ([]float64, bool) {
	var vector []float64
	ok := cc.lookup(ctx, embeddingNamespace+hash, &vector)
	return vector, ok
}

func (cc *Coordinator) EmbeddingStore(hash string, vector []float64) {
	cc.storeAsync(embeddingNamespace+hash, vector, EmbeddingTTL)
}

func (cc *Coordinator) lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := cc.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cc.Logger.Warn("Cache read failed, treating as miss", logger.WithError(err, logrus.Fields{"key": key}))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		cc.Logger.Warn("Cache entry is not decodable, treating as miss", logger.WithError(err, logrus.Fields{"key": key}))
		return false
	}
	return true
}

// storeAsync writes in the background so cache persistence never adds to
// request latency. Failures are logged and dropped.
func (cc *Coordinator) storeAsync(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		cc.Logger.Warn("Failed to marshal cache entry", logger.WithError(err, logrus.Fields{"key": key}))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := cc.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
			cc.Logger.Warn("Cache write failed", logger.WithError(err, logrus.Fields{"key": key}))
		}
	}()
}
