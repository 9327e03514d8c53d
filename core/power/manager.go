package power

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mvchuu/planetary-rover/core/events"
	"github.com/mvchuu/planetary-rover/core/logger"
	"github.com/mvchuu/planetary-rover/core/metrics"
	"github.com/mvchuu/planetary-rover/core/report"
	"github.com/mvchuu/planetary-rover/internal/eventbus"
)

// Motor draw model: idle base plus gains on commanded linear speed and
// angular rate.
const (
	motorIdleW        = 10.0
	motorLinearGainW  = 40.0
	motorAngularGainW = 20.0
)

// Manager owns the energy state and the component registry and applies the
// management and prediction cycles.
//
// Concurrency: a single mutex guards state and registry. The five entry
// points (ManagementTick, PredictionTick, UpdateBatteryVoltage,
// UpdateSolarPower, UpdateMotionCommand) all serialize on it, so a tick is
// atomic with respect to telemetry updates and ticks queue instead of
// running concurrently. Callers may invoke any entry point from any
// goroutine.
type Manager struct {
	mu       sync.Mutex
	state    EnergyState
	registry *Registry
	solar    *SampleWindow

	reporter report.Reporter
	sink     metrics.Sink
	bus      eventbus.EventBus
	log      logger.Logger
}

// NewManager creates a Manager with the startup energy state and the fixed
// component catalog. A nil reporter defaults to report.NopReporter and may
// be replaced later with SetReporter; sink, bus and log are optional.
func NewManager(cfg Config, rep report.Reporter, sink metrics.Sink, bus eventbus.EventBus, log logger.Logger) (*Manager, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("power: invalid config: %w", err)
	}
	if rep == nil {
		rep = report.NopReporter{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Manager{
		state:    NewEnergyState(),
		registry: NewRegistry(),
		solar:    NewSampleWindow(cfg.SolarWindowSize),
		reporter: rep,
		sink:     sink,
		bus:      bus,
		log:      log,
	}, nil
}

// SetReporter replaces the reporter. It exists so the transport adapter can
// be constructed after the manager it feeds.
func (m *Manager) SetReporter(rep report.Reporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rep == nil {
		rep = report.NopReporter{}
	}
	m.reporter = rep
}

// UpdateBatteryVoltage ingests a battery voltage sample, recomputes the
// state of charge and immediately republishes it.
func (m *Manager) UpdateBatteryVoltage(volts float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Voltage = volts
	m.state.BatterySoC = SoCFromVoltage(volts)
	if err := m.reporter.ReportSoC(m.state.BatterySoC); err != nil {
		m.log.Errorf("report soc: %v", err)
	}
}

// UpdateSolarPower ingests a solar generation sample. The value overwrites
// the previous one directly, without filtering.
func (m *Manager) UpdateSolarPower(watts float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SolarGeneration = watts
	m.solar.Add(watts)
}

// UpdateMotionCommand recomputes the motor draw from the commanded linear
// speed and angular rate. The draw takes effect immediately; the allocator
// only revisits it on the next management tick.
func (m *Manager) UpdateMotionCommand(linearX, angularZ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw := motorIdleW + motorLinearGainW*math.Abs(linearX) + motorAngularGainW*math.Abs(angularZ)
	m.registry.SetPower(ComponentMotors, draw)
}

// ManagementTick runs one management cycle: recompute consumption, evaluate
// the mode state machine, apply a transition if needed, allocate power from
// the instantaneous solar budget and report the available power.
func (m *Manager) ManagementTick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.PowerConsumption = m.registry.TotalConsumption()

	if target := DecideMode(m.state, m.state.Mode); target != m.state.Mode {
		m.switchMode(target)
	}

	m.registry.Allocate(m.state.SolarGeneration)

	budget := m.availablePower()
	if err := m.reporter.ReportAvailablePower(budget); err != nil {
		m.log.Errorf("report available power: %v", err)
	}
	if err := m.sink.RecordEnergySample(m.sample(budget)); err != nil {
		m.log.Errorf("record energy sample: %v", err)
	}
}

// PredictionTick reports the sol energy forecast together with the current
// SOC and mode. It never mutates engine state.
func (m *Manager) PredictionTick() {
	m.mu.Lock()
	soc := m.state.BatterySoC
	mode := m.state.Mode
	meanSolar := m.solar.Mean()
	stdSolar := m.solar.StdDev()
	samples := m.solar.Len()
	m.mu.Unlock()

	predicted := ForecastNextSol()
	line := fmt.Sprintf("Energy prediction for next sol: %.2f Wh | Current SOC: %.1f%% | Mode: %s", predicted, soc, mode)
	m.log.Infof("%s", line)
	if samples > 0 {
		m.log.Debugw("observed solar generation", map[string]any{
			"mean_w":   meanSolar,
			"stddev_w": stdSolar,
			"samples":  samples,
		})
	}
	if err := m.reporter.ReportForecast(line); err != nil {
		m.log.Errorf("report forecast: %v", err)
	}
	if err := m.sink.RecordForecast(metrics.Forecast{PredictedWh: predicted, SoC: soc, Mode: mode.String(), Time: time.Now()}); err != nil {
		m.log.Errorf("record forecast: %v", err)
	}
	if m.bus != nil {
		m.bus.Publish(events.ForecastEvent{PredictedWh: predicted, SoC: soc, Mode: mode.String(), Time: time.Now()})
	}
}

// SetMode requests a transition to the given mode using the same logic as an
// internally-triggered change. Requesting the active mode is a no-op:
// nothing is mutated and no notification is emitted.
func (m *Manager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mode == m.state.Mode {
		return
	}
	m.switchMode(mode)
}

// Mode returns the active operating mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Mode
}

// EnergyState returns a copy of the current snapshot.
func (m *Manager) EnergyState() EnergyState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Components returns a copy of the component catalog.
func (m *Manager) Components() []Component {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Components()
}

// AvailablePower returns the reportable power budget: solar generation minus
// critical consumption, floored at zero.
func (m *Manager) AvailablePower() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.availablePower()
}

func (m *Manager) availablePower() float64 {
	net := m.state.SolarGeneration - m.registry.CriticalConsumption()
	if net < 0 {
		return 0
	}
	return net
}

// switchMode performs an unconditional transition. Callers hold the lock and
// have already ruled out a self-transition.
func (m *Manager) switchMode(next Mode) {
	prev := m.state.Mode
	m.log.Warnf("switching power mode: %s -> %s", prev, next)
	m.state.Mode = next

	if err := m.reporter.ReportModeChange(prev.String(), next.String()); err != nil {
		m.log.Errorf("report mode change: %v", err)
	}
	m.registry.ApplyMode(next)

	now := time.Now()
	if m.bus != nil {
		m.bus.Publish(events.ModeChangeEvent{From: prev.String(), To: next.String(), Time: now})
	}
	if err := m.sink.RecordModeChange(metrics.ModeChange{From: prev.String(), To: next.String(), Time: now}); err != nil {
		m.log.Errorf("record mode change: %v", err)
	}
}

func (m *Manager) sample(budget float64) metrics.EnergySample {
	comps := make([]metrics.ComponentSample, 0, len(m.registry.comps))
	for _, c := range m.registry.comps {
		comps = append(comps, metrics.ComponentSample{
			Name:     c.Name,
			Priority: c.Priority.String(),
			PowerW:   c.CurrentPower,
			Enabled:  c.Enabled,
		})
	}
	return metrics.EnergySample{
		SoC:              m.state.BatterySoC,
		Voltage:          m.state.Voltage,
		SolarGeneration:  m.state.SolarGeneration,
		PowerConsumption: m.state.PowerConsumption,
		AvailablePower:   budget,
		Mode:             m.state.Mode.String(),
		Components:       comps,
		Time:             time.Now(),
	}
}
