package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Game metric names
const (
	MetricNameRunsStarted       = "runs_started_total"
	MetricNameRunsEnded         = "runs_ended_total"
	MetricNameDishesServed      = "dishes_served_total"
	MetricNameRecipesDiscovered = "recipes_discovered_total"
	MetricNameBossesDefeated    = "bosses_defeated_total"
	MetricNameDaysCompleted     = "days_completed_total"
	MetricNameServeDistance     = "serve_distance"
	MetricNamePaymentAmount     = "payment_amount"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextRunsStarted       = "Total number of runs started"
	HelpTextRunsEnded         = "Total number of runs ended, by outcome"
	HelpTextDishesServed      = "Total number of dishes served, by rating"
	HelpTextRecipesDiscovered = "Total number of recipes discovered, by method"
	HelpTextBossesDefeated    = "Total number of boss encounters won"
	HelpTextDaysCompleted     = "Total number of in-run days completed"
	HelpTextServeDistance     = "Attribute distance of served dishes"
	HelpTextPaymentAmount     = "Payment collected per served dish"
)

// Metric labels
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelRating  = "rating"
	LabelOutcome = "outcome"
	LabelRecipe  = "recipe_method"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// DistanceBuckets span the satisfaction thresholds.
var DistanceBuckets = []float64{0.5, 1, 2, 3, 4, 5, 6.5, 8, 9, 12}

// PaymentBuckets span the plausible per-dish payouts.
var PaymentBuckets = []float64{1, 2, 5, 10, 15, 20, 30, 50, 100}
