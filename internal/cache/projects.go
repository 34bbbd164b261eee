package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iac-studio/projects/internal/models"
	"github.com/iac-studio/projects/internal/services"
	"github.com/iac-studio/projects/pkg/logger"
	"github.com/iac-studio/projects/pkg/metrics"
)

// ProjectsKey is the cache key holding the serialized project list.
const ProjectsKey = "projects:all"

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the byte-level cache backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// ProjectReader serves FetchAll from the cache and falls through to the
// wrapped reader on a miss. Cache failures never fail the read.
type ProjectReader struct {
	next    services.ProjectReader
	store   Store
	ttl     time.Duration
	metrics *metrics.ReadMetrics
}

func NewProjectReader(next services.ProjectReader, store Store, ttl time.Duration, m *metrics.ReadMetrics) *ProjectReader {
	return &ProjectReader{next: next, store: store, ttl: ttl, metrics: m}
}

var _ services.ProjectReader = (*ProjectReader)(nil)

func (r *ProjectReader) FetchAll(ctx context.Context) ([]models.Project, error) {
	b, err := r.store.Get(ctx, ProjectsKey)
	switch {
	case err == nil:
		var out []models.Project
		if jerr := json.Unmarshal(b, &out); jerr == nil {
			r.metrics.IncCache(metrics.CacheHit)
			return out, nil
		}
		logger.L().Warn("discarding undecodable cached projects")
		r.metrics.IncCache(metrics.CacheError)
	case errors.Is(err, ErrMiss):
		r.metrics.IncCache(metrics.CacheMiss)
	default:
		logger.L().Warn("project cache get failed", zap.Error(err))
		r.metrics.IncCache(metrics.CacheError)
	}

	out, err := r.next.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Project{}
	}

	if b, err := json.Marshal(out); err == nil {
		if err := r.store.Set(ctx, ProjectsKey, b, r.ttl); err != nil {
			logger.L().Warn("project cache set failed", zap.Error(err))
		}
	}
	return out, nil
}
