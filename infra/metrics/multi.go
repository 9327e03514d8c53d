package metrics

import coremetrics "github.com/mvchuu/planetary-rover/core/metrics"

// MultiSink fans observations out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEnergySample forwards the sample to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordEnergySample(sample coremetrics.EnergySample) error {
	for _, s := range m.Sinks {
		if err := s.RecordEnergySample(sample); err != nil {
			return err
		}
	}
	return nil
}

// RecordModeChange forwards the transition to all sinks.
func (m *MultiSink) RecordModeChange(ev coremetrics.ModeChange) error {
	for _, s := range m.Sinks {
		if err := s.RecordModeChange(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordForecast forwards the forecast to all sinks.
func (m *MultiSink) RecordForecast(ev coremetrics.Forecast) error {
	for _, s := range m.Sinks {
		if err := s.RecordForecast(ev); err != nil {
			return err
		}
	}
	return nil
}
