package power

// Mode identifies the operating mode of the rover power system.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLowPower
	ModeHibernation
	ModeEmergency
)

// String returns the canonical mode label used at reporting boundaries.
// Decision logic never consumes this form.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeLowPower:
		return "LOW_POWER"
	case ModeHibernation:
		return "HIBERNATION"
	case ModeEmergency:
		return "EMERGENCY"
	default:
		return "UNKNOWN"
	}
}
