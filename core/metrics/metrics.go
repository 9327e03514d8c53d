package metrics

import "time"

// ComponentSample is the per-component slice of an energy sample.
type ComponentSample struct {
	Name     string
	Priority string
	PowerW   float64
	Enabled  bool
}

// EnergySample is the snapshot recorded on every management tick.
type EnergySample struct {
	SoC              float64
	Voltage          float64
	SolarGeneration  float64
	PowerConsumption float64
	AvailablePower   float64
	Mode             string
	Components       []ComponentSample
	Time             time.Time
}

// ModeChange captures an operating mode transition.
type ModeChange struct {
	From string
	To   string
	Time time.Time
}

// Forecast captures a sol energy forecast.
type Forecast struct {
	PredictedWh float64
	SoC         float64
	Mode        string
	Time        time.Time
}

// Sink records power engine observations for observability purposes.
type Sink interface {
	RecordEnergySample(EnergySample) error
	RecordModeChange(ModeChange) error
	RecordForecast(Forecast) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEnergySample(EnergySample) error { return nil }
func (NopSink) RecordModeChange(ModeChange) error     { return nil }
func (NopSink) RecordForecast(Forecast) error         { return nil }
