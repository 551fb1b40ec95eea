package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	RunsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRunsStarted,
			Help: HelpTextRunsStarted,
		},
	)

	RunsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRunsEnded,
			Help: HelpTextRunsEnded,
		},
		[]string{LabelOutcome},
	)

	DishesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDishesServed,
			Help: HelpTextDishesServed,
		},
		[]string{LabelRating},
	)

	RecipesDiscovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesDiscovered,
			Help: HelpTextRecipesDiscovered,
		},
		[]string{LabelRecipe},
	)

	BossesDefeated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBossesDefeated,
			Help: HelpTextBossesDefeated,
		},
	)

	DaysCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDaysCompleted,
			Help: HelpTextDaysCompleted,
		},
	)

	ServeDistance = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameServeDistance,
			Help:    HelpTextServeDistance,
			Buckets: DistanceBuckets,
		},
	)

	PaymentAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePaymentAmount,
			Help:    HelpTextPaymentAmount,
			Buckets: PaymentBuckets,
		},
	)
)
