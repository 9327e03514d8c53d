package mqtt

import "sync"

// MockReporter records reported values for tests.
type MockReporter struct {
	mu          sync.Mutex
	ModeChanges [][2]string
	SoCs        []float64
	Budgets     []float64
	Forecasts   []string
}

// NewMockReporter creates a new MockReporter.
func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

// ReportModeChange records the transition pair.
func (m *MockReporter) ReportModeChange(oldMode, newMode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModeChanges = append(m.ModeChanges, [2]string{oldMode, newMode})
	return nil
}

// ReportSoC records the state of charge.
func (m *MockReporter) ReportSoC(soc float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SoCs = append(m.SoCs, soc)
	return nil
}

// ReportAvailablePower records the budget.
func (m *MockReporter) ReportAvailablePower(watts float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Budgets = append(m.Budgets, watts)
	return nil
}

// ReportForecast records the forecast line.
func (m *MockReporter) ReportForecast(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Forecasts = append(m.Forecasts, line)
	return nil
}

// LastModeChange returns the most recent transition, if any.
func (m *MockReporter) LastModeChange() ([2]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ModeChanges) == 0 {
		return [2]string{}, false
	}
	return m.ModeChanges[len(m.ModeChanges)-1], true
}
