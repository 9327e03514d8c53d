package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mvchuu/planetary-rover/core/metrics"
)

// PromSink records power engine observations in Prometheus metrics.
type PromSink struct {
	soc         prometheus.Gauge
	solar       prometheus.Gauge
	consumption prometheus.Gauge
	budget      prometheus.Gauge
	component   *prometheus.GaugeVec
	enabled     *prometheus.GaugeVec
	modeChanges *prometheus.CounterVec
	forecast    prometheus.Gauge
}

// NewPromSink registers power metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are
// already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		soc: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rover_battery_soc_percent",
			Help: "Battery state of charge",
		}),
		solar: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rover_solar_generation_watts",
			Help: "Instantaneous solar generation",
		}),
		consumption: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rover_power_consumption_watts",
			Help: "Total draw of enabled components",
		}),
		budget: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rover_available_power_watts",
			Help: "Power budget after critical consumption",
		}),
		component: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rover_component_power_watts",
			Help: "Power assigned to each component",
		}, []string{"component", "priority"}),
		enabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rover_component_enabled",
			Help: "Whether the component participates in allocation (1/0)",
		}, []string{"component"}),
		modeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rover_power_mode_changes_total",
			Help: "Total number of operating mode transitions",
		}, []string{"from", "to"}),
		forecast: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rover_sol_energy_forecast_wh",
			Help: "Predicted net energy for the next sol",
		}),
	}

	collectors := []prometheus.Collector{
		s.soc, s.solar, s.consumption, s.budget, s.component, s.enabled, s.modeChanges, s.forecast,
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	s.soc = collectors[0].(prometheus.Gauge)
	s.solar = collectors[1].(prometheus.Gauge)
	s.consumption = collectors[2].(prometheus.Gauge)
	s.budget = collectors[3].(prometheus.Gauge)
	s.component = collectors[4].(*prometheus.GaugeVec)
	s.enabled = collectors[5].(*prometheus.GaugeVec)
	s.modeChanges = collectors[6].(*prometheus.CounterVec)
	s.forecast = collectors[7].(prometheus.Gauge)

	return s, nil
}

// RecordEnergySample updates the gauges from the tick snapshot.
func (s *PromSink) RecordEnergySample(sample coremetrics.EnergySample) error {
	s.soc.Set(sample.SoC)
	s.solar.Set(sample.SolarGeneration)
	s.consumption.Set(sample.PowerConsumption)
	s.budget.Set(sample.AvailablePower)
	for _, c := range sample.Components {
		s.component.WithLabelValues(c.Name, c.Priority).Set(c.PowerW)
		enabled := 0.0
		if c.Enabled {
			enabled = 1
		}
		s.enabled.WithLabelValues(c.Name).Set(enabled)
	}
	return nil
}

// RecordModeChange increments the transition counter.
func (s *PromSink) RecordModeChange(ev coremetrics.ModeChange) error {
	s.modeChanges.WithLabelValues(ev.From, ev.To).Inc()
	return nil
}

// RecordForecast sets the forecast gauge.
func (s *PromSink) RecordForecast(ev coremetrics.Forecast) error {
	s.forecast.Set(ev.PredictedWh)
	return nil
}
