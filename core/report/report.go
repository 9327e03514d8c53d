// Package report defines the outbound publication boundary of the power
// engine. Transport adapters (MQTT, tests) implement Reporter.
package report

// Reporter publishes engine results to external consumers. Implementations
// must be safe for use from the engine's serialized entry points and should
// surface transport failures through the returned error; the engine logs
// them and carries on.
type Reporter interface {
	// ReportModeChange publishes the new mode label after a transition.
	ReportModeChange(oldMode, newMode string) error
	// ReportSoC publishes the battery state of charge in percent.
	ReportSoC(soc float64) error
	// ReportAvailablePower publishes the power budget in watts.
	ReportAvailablePower(watts float64) error
	// ReportForecast publishes the human-readable sol energy forecast.
	ReportForecast(line string) error
}

// NopReporter implements Reporter with no-op methods.
type NopReporter struct{}

func (NopReporter) ReportModeChange(string, string) error { return nil }
func (NopReporter) ReportSoC(float64) error               { return nil }
func (NopReporter) ReportAvailablePower(float64) error    { return nil }
func (NopReporter) ReportForecast(string) error           { return nil }
