// Package placecache is a caching decorator over the upstream places
// provider. Cache failures degrade to provider calls and never fail a
// request.
package placecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tripdesk-cloud/placedex/internal/db"
	"github.com/tripdesk-cloud/placedex/internal/domain"
	"github.com/tripdesk-cloud/placedex/internal/domain/place"
	"github.com/tripdesk-cloud/placedex/internal/domain/query"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
)

var (
	suggestKeyPrefix = domain.KeyPrefix + "ac:"
	detailKeyPrefix  = domain.KeyPrefix + "pl:"
)

// provider is the consumer interface for the wrapped places source (ISP).
type provider interface {
	Suggest(ctx context.Context, q query.Query, types, session string) ([]suggestion.Suggestion, error)
	Resolve(ctx context.Context, id, session string) (place.Place, error)
}

// store is the consumer interface for the key-value cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache caches provider responses in a key-value store.
type Cache struct {
	inner      provider
	store      store
	suggestTTL time.Duration
	detailTTL  time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with labels "kind" and "result", passed explicitly.
func New(
	inner provider,
	s store,
	suggestTTL, detailTTL time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		store:      s,
		suggestTTL: suggestTTL,
		detailTTL:  detailTTL,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Suggest returns cached predictions or calls the wrapped provider.
// The cache key ignores the session token: sessions group billing upstream,
// they do not change results.
func (c *Cache) Suggest(
	ctx context.Context, q query.Query, types, session string,
) ([]suggestion.Suggestion, error) {
	key := suggestKey(q, types)

	if data, ok := c.getFromCache(ctx, key); ok {
		var dtos []suggestionDTO
		if err := json.Unmarshal(data, &dtos); err == nil {
			c.incCache("suggest", "hit")
			return suggestionsFromDTO(dtos), nil
		}
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key))
	}

	c.incCache("suggest", "miss")

	list, err := c.inner.Suggest(ctx, q, types, session)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	c.putToCache(ctx, key, suggestionsToDTO(list), c.suggestTTL)
	return list, nil
}

// Resolve returns a cached place record or calls the wrapped provider.
func (c *Cache) Resolve(ctx context.Context, id, session string) (place.Place, error) {
	key := detailKey(id)

	if data, ok := c.getFromCache(ctx, key); ok {
		var dto placeDTO
		if err := json.Unmarshal(data, &dto); err == nil && dto.ID != "" {
			c.incCache("detail", "hit")
			return placeFromDTO(dto), nil
		}
		c.logger.Warn("Failed to parse cached place", zap.String("key", key))
	}

	c.incCache("detail", "miss")

	p, err := c.inner.Resolve(ctx, id, session)
	if err != nil {
		return place.Place{}, fmt.Errorf("resolve: %w", err)
	}

	c.putToCache(ctx, key, placeToDTO(&p), c.detailTTL)
	return p, nil
}

func (c *Cache) incCache(kind, result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(kind, result).Inc()
	}
}

func (c *Cache) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read place cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *Cache) putToCache(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		c.logger.Warn("Failed to write place cache", zap.String("key", key), zap.Error(err))
	}
}

func suggestKey(q query.Query, types string) string {
	h := sha256.Sum256([]byte(q.Normalized() + "\x00" + types))
	return suggestKeyPrefix + hex.EncodeToString(h[:])
}

func detailKey(id string) string {
	h := sha256.Sum256([]byte(id))
	return detailKeyPrefix + hex.EncodeToString(h[:])
}
