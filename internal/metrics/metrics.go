// Package metrics declares the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuestionsGenerated counts quiz questions served, labeled by level.
	QuestionsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocaquiz_questions_generated_total",
		Help: "Number of quiz questions generated.",
	}, []string{"level"})

	// AnswersChecked counts answer verdicts, labeled by outcome.
	AnswersChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocaquiz_answers_checked_total",
		Help: "Number of quiz answers checked.",
	}, []string{"result"})

	// TranslationCacheHits counts translations served from the in-process cache.
	TranslationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocaquiz_translation_cache_hits_total",
		Help: "Number of translation lookups answered from cache.",
	})

	// TranslationCacheMisses counts translations that went to the provider.
	TranslationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocaquiz_translation_cache_misses_total",
		Help: "Number of translation lookups that missed the cache.",
	})

	// TranslationFailures counts provider calls that returned no translation.
	TranslationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocaquiz_translation_failures_total",
		Help: "Number of failed translation provider calls.",
	})

	// SessionsPurged counts stale sessions removed by the cleanup job.
	SessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocaquiz_sessions_purged_total",
		Help: "Number of expired or revoked sessions deleted.",
	})
)
