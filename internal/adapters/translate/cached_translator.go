package translate

import (
	"bus-journey-service/internal/ports"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "translate"

// CachedTranslator decorates a NameTranslator with a TranslationCache.
// Cache failures are logged and never fail a translation.
type CachedTranslator struct {
	next   ports.NameTranslator
	cache  ports.TranslationCache
	ttl    time.Duration
	logger *zap.Logger
}

var _ ports.NameTranslator = (*CachedTranslator)(nil)

func NewCachedTranslator(
	next ports.NameTranslator,
	cache ports.TranslationCache,
	ttl time.Duration,
	logger *zap.Logger,
) (*CachedTranslator, error) {
	if next == nil {
		return nil, errors.New("new cached translator: translator is nil")
	}
	if cache == nil {
		return nil, errors.New("new cached translator: cache is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTranslator{next: next, cache: cache, ttl: ttl, logger: logger}, nil
}

func cacheKey(targetScript, text string) string {
	return keyPrefix + ":" + targetScript + ":" + text
}

func (c *CachedTranslator) Translate(ctx context.Context, text, targetScript string) (string, error) {
	key := cacheKey(targetScript, text)

	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("translation cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return v, nil
	}

	out, err := c.next.Translate(ctx, text, targetScript)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		c.logger.Warn("translation cache set failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}
