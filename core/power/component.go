package power

// Priority orders components for power allocation. Lower values are served
// first.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// String returns a human-readable priority label.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Well-known component names referenced by the engine itself.
const (
	ComponentMotors  = "motors"
	ComponentCameras = "cameras"
)

// Component is one power-consuming subsystem of the rover.
type Component struct {
	Name         string
	Priority     Priority
	NominalPower float64 // watts drawn when fully served
	CurrentPower float64 // watts assigned this tick, 0 <= CurrentPower <= NominalPower
	Enabled      bool    // participates in allocation this tick
	Essential    bool    // survives hibernation pruning even if not critical
}

// Registry is the fixed catalog of rover subsystems. It is populated once at
// startup; entries are never added or removed afterwards, only CurrentPower
// and Enabled change at runtime.
type Registry struct {
	comps []Component
}

// NewRegistry returns a registry populated with the rover component catalog.
func NewRegistry() *Registry {
	return &Registry{comps: []Component{
		{Name: "communication", Priority: PriorityCritical, NominalPower: 15, CurrentPower: 15, Enabled: true, Essential: true},
		{Name: "fdir_watchdog", Priority: PriorityCritical, NominalPower: 5, CurrentPower: 5, Enabled: true, Essential: true},
		{Name: "navigation", Priority: PriorityHigh, NominalPower: 25, CurrentPower: 25, Enabled: true, Essential: true},
		{Name: ComponentMotors, Priority: PriorityHigh, NominalPower: 50, CurrentPower: 0, Enabled: true, Essential: true},
		{Name: "lidar", Priority: PriorityMedium, NominalPower: 20, CurrentPower: 20, Enabled: true, Essential: false},
		{Name: ComponentCameras, Priority: PriorityMedium, NominalPower: 15, CurrentPower: 15, Enabled: true, Essential: false},
		{Name: "science_instruments", Priority: PriorityLow, NominalPower: 30, CurrentPower: 0, Enabled: true, Essential: false},
		{Name: "heating", Priority: PriorityMedium, NominalPower: 40, CurrentPower: 0, Enabled: true, Essential: false},
	}}
}

// Components returns a copy of the catalog in its original order.
func (r *Registry) Components() []Component {
	out := make([]Component, len(r.comps))
	copy(out, r.comps)
	return out
}

// Get returns the component with the given name.
func (r *Registry) Get(name string) (Component, bool) {
	for _, c := range r.comps {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// SetPower overwrites the current draw of the named component. It reports
// whether the component exists.
func (r *Registry) SetPower(name string, watts float64) bool {
	for i := range r.comps {
		if r.comps[i].Name == name {
			r.comps[i].CurrentPower = watts
			return true
		}
	}
	return false
}

// TotalConsumption sums the current draw of all enabled components.
func (r *Registry) TotalConsumption() float64 {
	total := 0.0
	for _, c := range r.comps {
		if c.Enabled {
			total += c.CurrentPower
		}
	}
	return total
}

// CriticalConsumption sums the current draw of enabled critical-priority
// components.
func (r *Registry) CriticalConsumption() float64 {
	total := 0.0
	for _, c := range r.comps {
		if c.Enabled && c.Priority == PriorityCritical {
			total += c.CurrentPower
		}
	}
	return total
}
