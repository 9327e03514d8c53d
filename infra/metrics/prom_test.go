package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/mvchuu/planetary-rover/core/metrics"
)

func TestPromSink_RecordModeChange(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordModeChange(coremetrics.ModeChange{From: "NORMAL", To: "LOW_POWER", Time: time.Now()}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP rover_power_mode_changes_total Total number of operating mode transitions
# TYPE rover_power_mode_changes_total counter
rover_power_mode_changes_total{from="NORMAL",to="LOW_POWER"} 1
`
	if err := testutil.CollectAndCompare(sink.modeChanges, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_RecordEnergySample(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sample := coremetrics.EnergySample{
		SoC:              75.5,
		SolarGeneration:  120,
		PowerConsumption: 80,
		AvailablePower:   100,
		Mode:             "NORMAL",
		Components: []coremetrics.ComponentSample{
			{Name: "communication", Priority: "critical", PowerW: 15, Enabled: true},
			{Name: "cameras", Priority: "medium", PowerW: 0, Enabled: false},
		},
		Time: time.Now(),
	}
	if err := sink.RecordEnergySample(sample); err != nil {
		t.Fatalf("record error: %v", err)
	}

	if got := testutil.ToFloat64(sink.soc); got != 75.5 {
		t.Errorf("soc gauge = %v, want 75.5", got)
	}
	if got := testutil.ToFloat64(sink.budget); got != 100 {
		t.Errorf("budget gauge = %v, want 100", got)
	}
	if got := testutil.ToFloat64(sink.component.WithLabelValues("communication", "critical")); got != 15 {
		t.Errorf("component gauge = %v, want 15", got)
	}
	if got := testutil.ToFloat64(sink.enabled.WithLabelValues("cameras")); got != 0 {
		t.Errorf("enabled gauge = %v, want 0", got)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second sink: %v", err)
	}
}
