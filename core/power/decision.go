package power

// Mode thresholds. The gap between lowPowerSoC/normalSoC and the zero power
// balance bound forms a hysteresis band in which the active mode is kept.
const (
	emergencySoC      = 15.0
	hibernationSolarW = 5.0
	hibernationSoC    = 50.0
	lowPowerSoC       = 30.0
	lowPowerBalanceW  = -10.0
	normalSoC         = 40.0
)

// DecideMode evaluates the mode state machine for the given snapshot. Rules
// are checked in strict order and the first match wins; when none matches the
// current mode is kept.
func DecideMode(s EnergyState, current Mode) Mode {
	balance := s.SolarGeneration - s.PowerConsumption

	if s.BatterySoC < emergencySoC {
		return ModeEmergency
	}
	if s.SolarGeneration < hibernationSolarW && s.BatterySoC < hibernationSoC {
		return ModeHibernation
	}
	if s.BatterySoC < lowPowerSoC || balance < lowPowerBalanceW {
		return ModeLowPower
	}
	if s.BatterySoC > normalSoC && balance > 0 {
		return ModeNormal
	}
	return current
}

// ApplyMode enables and disables catalog entries for the target mode.
//
// In low-power mode the camera rig is force-disabled by name on top of the
// LOW-priority rule; the cameras are treated as more power-sensitive than
// their priority class.
func (r *Registry) ApplyMode(mode Mode) {
	for i := range r.comps {
		c := &r.comps[i]
		switch mode {
		case ModeNormal:
			c.Enabled = true
		case ModeLowPower:
			if c.Priority == PriorityLow {
				c.Enabled = false
			}
			if c.Name == ComponentCameras {
				c.Enabled = false
			}
		case ModeHibernation:
			if c.Priority != PriorityCritical && !c.Essential {
				c.Enabled = false
			}
		case ModeEmergency:
			c.Enabled = c.Priority == PriorityCritical
		}
	}
}
