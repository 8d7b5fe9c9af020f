package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's prometheus collectors.
type Metrics struct {
	ProfileBuilds       *prometheus.CounterVec
	ProfileBuildLatency prometheus.Histogram
	IngredientVerdicts  *prometheus.CounterVec
	ExpiryAlerts        prometheus.Counter

	RecipeAPIRequests *prometheus.CounterVec
	RecipeAPILatency  prometheus.Histogram
	RecipeCacheHits   prometheus.Counter

	ExtractionRequests *prometheus.CounterVec
}

// New registers all collectors on reg. Tests pass a fresh registry; the app
// uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProfileBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_builds_total",
			Help:      "Total number of master profile builds",
		}, []string{"status"}),
		ProfileBuildLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_build_duration_seconds",
			Help:      "Time spent building and storing a master profile",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		IngredientVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredient_verdicts_total",
			Help:      "Ingredients classified per partition",
		}, []string{"partition"}),
		ExpiryAlerts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_alerts_total",
			Help:      "Ingredients flagged as expired or expiring soon",
		}),
		RecipeAPIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_api_requests_total",
			Help:      "Requests sent to the remote recipe search API",
		}, []string{"status"}),
		RecipeAPILatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_api_duration_seconds",
			Help:      "Duration of remote recipe search requests",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		RecipeCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_cache_hits_total",
			Help:      "Recipe searches answered from cache",
		}),
		ExtractionRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_requests_total",
			Help:      "Document and photo extraction requests",
		}, []string{"kind", "status"}),
	}
}
