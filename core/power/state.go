package power

// Battery SOC is mapped linearly over the 24.0-29.4 V pack window.
const (
	socEmptyVoltage = 24.0
	socVoltageSpan  = 5.4
)

// EnergyState is a snapshot of the electrical quantities the engine acts on.
// Current and Temperature are recorded for completeness but do not influence
// any decision.
type EnergyState struct {
	BatterySoC       float64 // percent, always within [0,100]
	Voltage          float64 // volts
	Current          float64 // amps
	PowerConsumption float64 // watts, sum of enabled components' draw
	SolarGeneration  float64 // watts
	Temperature      float64 // degrees Celsius
	Mode             Mode
}

// NewEnergyState returns the startup snapshot: full battery at 28 V in
// normal mode.
func NewEnergyState() EnergyState {
	return EnergyState{
		BatterySoC:  100,
		Voltage:     28,
		Temperature: 20,
		Mode:        ModeNormal,
	}
}

// SoCFromVoltage maps a pack voltage to state of charge in percent.
// Out-of-range readings clamp to [0,100], they are never rejected.
func SoCFromVoltage(volts float64) float64 {
	soc := (volts - socEmptyVoltage) / socVoltageSpan * 100
	if soc < 0 {
		return 0
	}
	if soc > 100 {
		return 100
	}
	return soc
}
