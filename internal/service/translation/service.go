// Package translation provides word translation with an in-process cache in
// front of the external provider.
package translation

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/metrics"
)

// translator is the external provider interface needed by the service.
type translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Service caches successful translations for the lifetime of the process.
// Failed lookups are never cached, so a provider outage does not poison
// future requests.
type Service struct {
	log        *slog.Logger
	translator translator

	mu    sync.RWMutex
	cache map[string]string

	group singleflight.Group
}

// NewService creates a new translation service.
func NewService(logger *slog.Logger, tr translator) *Service {
	return &Service{
		log:        logger.With("service", "translation"),
		translator: tr,
		cache:      make(map[string]string),
	}
}

// Translate returns the cached translation of word, calling the provider on a
// miss. The cache key is the normalized form, so "apple," and "apple" share
// one entry. Concurrent misses for the same word collapse into a single
// provider call.
func (s *Service) Translate(ctx context.Context, word string) (string, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return "", domain.ErrTranslationUnavailable
	}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		metrics.TranslationCacheHits.Inc()
		return cached, nil
	}

	metrics.TranslationCacheMisses.Inc()

	translated, err, _ := s.group.Do(key, func() (any, error) {
		// Another goroutine may have filled the cache while we queued.
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		result, err := s.translator.Translate(ctx, key)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.cache[key] = result
		s.mu.Unlock()

		return result, nil
	})
	if err != nil {
		metrics.TranslationFailures.Inc()
		s.log.WarnContext(ctx, "translation failed",
			slog.String("word", key), slog.String("error", err.Error()))
		return "", err
	}

	return translated.(string), nil
}

// CacheSize returns the number of cached translations.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
