package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"exlookup/internal/testutil"
)

func TestRecordLookup(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{"found", "found"},
		{"not found", "not_found"},
		{"transport error", "transport_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := promtestutil.ToFloat64(lookupsTotal.WithLabelValues(tt.outcome))
			RecordLookup(tt.outcome, 25*time.Millisecond)
			after := promtestutil.ToFloat64(lookupsTotal.WithLabelValues(tt.outcome))
			if after-before != 1 {
				t.Errorf("%s counter moved by %v, want 1", tt.outcome, after-before)
			}
		})
	}
}

func TestTallyCollector(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	for _, outcome := range []string{"found", "not_found", "not_found"} {
		if err := database.IncrementLookupTally(ctx, outcome); err != nil {
			t.Fatalf("IncrementLookupTally() error = %v", err)
		}
	}

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(NewTallyCollector(database))

	n, err := promtestutil.GatherAndCount(reg, "exlookup_persisted_lookups_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 2 {
		t.Errorf("got %d series, want 2", n)
	}
}
