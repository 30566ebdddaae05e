package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"exlookup/internal/db"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exlookup_lookups_total",
			Help: "Total exception lookups by outcome",
		},
		[]string{"outcome"},
	)

	lookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exlookup_lookup_duration_seconds",
			Help:    "Latency of exception lookups against the telemetry backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	persistedLookupDesc = prometheus.NewDesc(
		"exlookup_persisted_lookups_total",
		"Total exception lookups by outcome, persisted across restarts",
		[]string{"outcome"},
		nil,
	)
)

// TallyCollector is a custom Prometheus collector that reads persisted
// outcome tallies from the database on each scrape.
type TallyCollector struct {
	db *db.DB
}

// NewTallyCollector creates a collector backed by database.
func NewTallyCollector(database *db.DB) *TallyCollector {
	return &TallyCollector{db: database}
}

// Describe sends the metric descriptor to the channel.
func (c *TallyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- persistedLookupDesc
}

// Collect queries the database for all tallies and emits them as counters.
func (c *TallyCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tallies, err := c.db.GetLookupTallies(ctx)
	if err != nil {
		slog.Error("failed to collect lookup tally metrics", "error", err)
		return
	}
	for _, t := range tallies {
		ch <- prometheus.MustNewConstMetric(
			persistedLookupDesc,
			prometheus.CounterValue,
			float64(t.Count),
			t.Outcome,
		)
	}
}

// Recorder persists lookup outcomes asynchronously.
type Recorder struct {
	db *db.DB
	wg sync.WaitGroup
}

var (
	recorder *Recorder
	initOnce sync.Once
)

// Init registers the lookup metrics and, when database is non-nil, the
// persisted tally collector and recorder. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(lookupsTotal, lookupDuration)
		if database != nil {
			recorder = &Recorder{db: database}
			prometheus.MustRegister(NewTallyCollector(database))
		}
	})
}

// RecordLookup counts one lookup and its latency. When a database is
// configured the outcome is also persisted in the background.
func RecordLookup(outcome string, elapsed time.Duration) {
	lookupsTotal.WithLabelValues(outcome).Inc()
	lookupDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if recorder == nil {
		return
	}
	recorder.wg.Add(1)
	go func() {
		defer recorder.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.db.IncrementLookupTally(ctx, outcome); err != nil {
			slog.Error("failed to record lookup tally", "outcome", outcome, "error", err)
		}
	}()
}

// Flush waits for in-flight tally writes. Called during shutdown.
func Flush() {
	if recorder == nil {
		return
	}
	recorder.wg.Wait()
}
