package metrics

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

type countingProvider struct {
	calls atomic.Int32
	stats Stats
}

func (p *countingProvider) GetStats() Stats {
	p.calls.Add(1)
	return p.stats
}

func TestInitializeMetrics(t *testing.T) {
	InitializeMetrics()

	if got := counterValue(t, ValidationsTotal.WithLabelValues("invalid")); got != 0 {
		t.Errorf("expected pre-populated counter at 0, got %v", got)
	}

	ch := make(chan prometheus.Metric, 64)
	PlaylistMutationsTotal.Collect(ch)
	close(ch)
	if n := len(ch); n < 6 {
		t.Errorf("expected at least 6 mutation series, got %d", n)
	}
}

func TestCollectorUpdatesGauges(t *testing.T) {
	provider := &countingProvider{stats: Stats{TotalPlaylists: 3, TotalTracks: 11}}

	c := NewCollector(provider, time.Hour)
	c.collect()

	if got := gaugeValue(t, PlaylistsTotal); got != 3 {
		t.Errorf("PlaylistsTotal = %v, want 3", got)
	}
	if got := gaugeValue(t, TracksTotal); got != 11 {
		t.Errorf("TracksTotal = %v, want 11", got)
	}
}

func TestCollectorStartStop(t *testing.T) {
	provider := &countingProvider{}

	c := NewCollector(provider, 10*time.Millisecond)
	c.Start()

	deadline := time.Now().Add(time.Second)
	for provider.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Stop()

	if provider.calls.Load() < 2 {
		t.Errorf("expected at least 2 collections, got %d", provider.calls.Load())
	}
}

func TestCollectorNilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	c.collect()
}
