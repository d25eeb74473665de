package sentiment

import (
	"context"
	"time"

	"LiskPredict/internal/domain/models"
	"LiskPredict/internal/domain/repository"
	"LiskPredict/pkg/cache"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/util"
)

// TTLs holds per-source cache lifetimes. On-chain data moves faster than
// news or social chatter, so it expires sooner.
type TTLs struct {
	News    time.Duration
	Social  time.Duration
	OnChain time.Duration
}

// DefaultTTLs mirror the source refresh cadences: 5 minutes for news and
// social, 1 minute for on-chain.
func DefaultTTLs() TTLs {
	return TTLs{
		News:    5 * time.Minute,
		Social:  5 * time.Minute,
		OnChain: time.Minute,
	}
}

func (t TTLs) For(source models.SourceType) time.Duration {
	switch source {
	case models.SourceNews:
		return t.News
	case models.SourceSocial:
		return t.Social
	case models.SourceOnChain:
		return t.OnChain
	default:
		return t.News
	}
}

// Cache fronts the layered cache with the sentiment key scheme. Tier
// failures degrade to a miss so a dead Redis never blocks analysis; the
// failure is logged and counted.
type Cache struct {
	svc     cache.Service
	ttls    TTLs
	logger  *applogger.Logger
	metrics repository.Metrics
}

func NewCache(svc cache.Service, ttls TTLs, l *applogger.Logger, m repository.Metrics) *Cache {
	return &Cache{svc: svc, ttls: ttls, logger: l, metrics: m}
}

// Key builds the canonical cache key: sentiment:{type}:{symbol}, symbol
// lowercased so lookups are case-insensitive.
func Key(symbol string, source models.SourceType) string {
	return cache.Key("sentiment", string(source), util.NormalizeSymbol(symbol))
}

func (c *Cache) get(ctx context.Context, symbol string, source models.SourceType, dest interface{}) bool {
	key := Key(symbol, source)
	err := c.svc.Get(ctx, key, dest)
	if err == nil {
		c.metrics.RecordCache(string(source), true)
		return true
	}
	if !cache.IsMiss(err) {
		cerr := &models.CacheError{Op: "get", Key: key, Err: err}
		c.logger.Warn("sentiment cache degraded", applogger.Error(cerr))
		c.metrics.RecordError("cache")
	}
	c.metrics.RecordCache(string(source), false)
	return false
}

func (c *Cache) set(ctx context.Context, symbol string, source models.SourceType, value interface{}) {
	key := Key(symbol, source)
	if err := c.svc.Set(ctx, key, value, c.ttls.For(source)); err != nil {
		cerr := &models.CacheError{Op: "set", Key: key, Err: err}
		c.logger.Warn("sentiment cache degraded", applogger.Error(cerr))
		c.metrics.RecordError("cache")
	}
}

// GetSocial returns the cached social summary, if present.
func (c *Cache) GetSocial(ctx context.Context, symbol string) (*models.PlatformSentiment, bool) {
	var v models.PlatformSentiment
	if c.get(ctx, symbol, models.SourceSocial, &v) {
		return &v, true
	}
	return nil, false
}

func (c *Cache) SetSocial(ctx context.Context, symbol string, v *models.PlatformSentiment) {
	c.set(ctx, symbol, models.SourceSocial, *v)
}

// GetNews returns the cached news summary, if present.
func (c *Cache) GetNews(ctx context.Context, symbol string) (*models.News, bool) {
	var v models.News
	if c.get(ctx, symbol, models.SourceNews, &v) {
		return &v, true
	}
	return nil, false
}

func (c *Cache) SetNews(ctx context.Context, symbol string, v *models.News) {
	c.set(ctx, symbol, models.SourceNews, *v)
}

// GetOnChain returns the cached on-chain summary, if present.
func (c *Cache) GetOnChain(ctx context.Context, symbol string) (*models.OnChain, bool) {
	var v models.OnChain
	if c.get(ctx, symbol, models.SourceOnChain, &v) {
		return &v, true
	}
	return nil, false
}

func (c *Cache) SetOnChain(ctx context.Context, symbol string, v *models.OnChain) {
	c.set(ctx, symbol, models.SourceOnChain, *v)
}

// Invalidate drops cached entries for a symbol. With no sources given it
// drops all of them.
func (c *Cache) Invalidate(ctx context.Context, symbol string, sources ...models.SourceType) error {
	if len(sources) == 0 {
		sources = models.SourceTypes
	}
	keys := make([]string, len(sources))
	for i, source := range sources {
		keys[i] = Key(symbol, source)
	}
	if err := c.svc.Delete(ctx, keys...); err != nil {
		return &models.CacheError{Op: "delete", Key: keys[0], Err: err}
	}
	return nil
}
