package prometheus

// EngineMetrics holds the metric families recorded across the mapping and
// circuit layers.  Construct once at startup and share.
type EngineMetrics struct {
	// Classification
	ClassificationsTotal CounterVec // identity kind, outcome
	ClassificationErrors CounterVec // error code

	// Resolution
	ResolutionsTotal CounterVec // match source
	ResolutionMisses CounterVec // device class

	// Mapping
	MappingDuration   HistogramVec // device class
	MappingConfidence HistogramVec // device class
	BatchSize         HistogramVec // no labels beyond outcome
	BatchDuration     HistogramVec

	// Caches
	CacheHitsTotal   CounterVec // cache name
	CacheMissesTotal CounterVec // cache name
	CacheSize        GaugeVec   // cache name

	// Circuit validation
	ValidationIssuesTotal CounterVec // severity, code
	BranchUtilization     HistogramVec

	// Catalog
	CatalogReloadsTotal CounterVec // outcome
	CatalogRecords      GaugeVec   // class

	// HTTP surface
	HTTPRequestsTotal   CounterVec // method, path, status
	HTTPRequestDuration HistogramVec
}

var (
	durationBuckets    = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	batchSizeBuckets   = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
	confidenceBuckets  = []float64{.1, .2, .3, .4, .5, .6, .7, .8, .9, 1}
	utilizationBuckets = []float64{10, 25, 50, 75, 90, 100, 110, 125, 150}
)

// NewEngineMetrics registers every engine metric family on the collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	m := &EngineMetrics{}

	m.ClassificationsTotal = collector.RegisterCounter("classifications_total",
		"Device classifications by identity kind and outcome", "kind", "outcome")
	m.ClassificationErrors = collector.RegisterCounter("classification_errors_total",
		"Classification failures by error code", "code")

	m.ResolutionsTotal = collector.RegisterCounter("resolutions_total",
		"Specification resolutions by match source", "source")
	m.ResolutionMisses = collector.RegisterCounter("resolution_misses_total",
		"Catalog resolution misses handed to the generic repository", "class")

	m.MappingDuration = collector.RegisterHistogram("mapping_duration_seconds",
		"Single-device mapping duration", durationBuckets, "class")
	m.MappingConfidence = collector.RegisterHistogram("mapping_confidence",
		"Mapping confidence score distribution", confidenceBuckets, "class")
	m.BatchSize = collector.RegisterHistogram("batch_size_devices",
		"Devices per batch mapping request", batchSizeBuckets, "outcome")
	m.BatchDuration = collector.RegisterHistogram("batch_duration_seconds",
		"Batch mapping duration", nil, "outcome")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total",
		"Cache hits by cache name", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total",
		"Cache misses by cache name", "cache")
	m.CacheSize = collector.RegisterGauge("cache_size_entries",
		"Live cache entries by cache name", "cache")

	m.ValidationIssuesTotal = collector.RegisterCounter("validation_issues_total",
		"Circuit validation issues by severity and code", "severity", "code")
	m.BranchUtilization = collector.RegisterHistogram("branch_utilization_percent",
		"Branch current utilization against the effective limit", utilizationBuckets, "factor")

	m.CatalogReloadsTotal = collector.RegisterCounter("catalog_reloads_total",
		"Catalog reloads by outcome", "outcome")
	m.CatalogRecords = collector.RegisterGauge("catalog_records",
		"Indexed catalog records by device class", "class")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"HTTP requests by method, path, and status", "method", "path", "status")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", nil, "method", "path")

	return m
}
