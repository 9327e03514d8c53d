package metrics

import (
	"fmt"
	"testing"
	"time"

	coremetrics "github.com/mvchuu/planetary-rover/core/metrics"
)

type countingSink struct {
	samples int
	changes int
	fail    bool
}

func (c *countingSink) RecordEnergySample(coremetrics.EnergySample) error {
	if c.fail {
		return fmt.Errorf("sink failed")
	}
	c.samples++
	return nil
}

func (c *countingSink) RecordModeChange(coremetrics.ModeChange) error {
	c.changes++
	return nil
}

func (c *countingSink) RecordForecast(coremetrics.Forecast) error { return nil }

func TestMultiSinkFanout(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	multi := NewMultiSink(a, b)
	if err := multi.RecordEnergySample(coremetrics.EnergySample{Time: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := multi.RecordModeChange(coremetrics.ModeChange{From: "NORMAL", To: "EMERGENCY"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.samples != 1 || b.samples != 1 || a.changes != 1 || b.changes != 1 {
		t.Fatalf("fanout incomplete: %+v %+v", a, b)
	}
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	a := &countingSink{fail: true}
	b := &countingSink{}
	multi := NewMultiSink(a, b)
	if err := multi.RecordEnergySample(coremetrics.EnergySample{}); err == nil {
		t.Fatalf("expected error")
	}
	if b.samples != 0 {
		t.Fatalf("later sink called after failure")
	}
}
