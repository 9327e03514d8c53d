package power

import "testing"

func TestDecideModeEmergencyOverridesEverything(t *testing.T) {
	states := []EnergyState{
		{BatterySoC: 14.9, SolarGeneration: 200, PowerConsumption: 0},
		{BatterySoC: 0, SolarGeneration: 0, PowerConsumption: 500},
		{BatterySoC: 10, SolarGeneration: 4, PowerConsumption: 4},
	}
	for _, s := range states {
		for _, current := range []Mode{ModeNormal, ModeLowPower, ModeHibernation, ModeEmergency} {
			if got := DecideMode(s, current); got != ModeEmergency {
				t.Errorf("soc %.1f from %s: expected EMERGENCY got %s", s.BatterySoC, current, got)
			}
		}
	}
}

func TestDecideModeHibernation(t *testing.T) {
	s := EnergyState{BatterySoC: 45, SolarGeneration: 4, PowerConsumption: 10}
	if got := DecideMode(s, ModeNormal); got != ModeHibernation {
		t.Fatalf("expected HIBERNATION got %s", got)
	}
	// sufficient solar keeps hibernation off the table
	s.SolarGeneration = 5
	if got := DecideMode(s, ModeNormal); got == ModeHibernation {
		t.Fatalf("unexpected HIBERNATION with %v W solar", s.SolarGeneration)
	}
}

func TestDecideModeLowPower(t *testing.T) {
	// low SOC trigger
	s := EnergyState{BatterySoC: 29, SolarGeneration: 100, PowerConsumption: 50}
	if got := DecideMode(s, ModeNormal); got != ModeLowPower {
		t.Fatalf("expected LOW_POWER got %s", got)
	}
	// deficit trigger
	s = EnergyState{BatterySoC: 80, SolarGeneration: 10, PowerConsumption: 120}
	if got := DecideMode(s, ModeNormal); got != ModeLowPower {
		t.Fatalf("expected LOW_POWER on deficit got %s", got)
	}
}

func TestDecideModeNormalRecovery(t *testing.T) {
	s := EnergyState{BatterySoC: 41, SolarGeneration: 100, PowerConsumption: 50}
	if got := DecideMode(s, ModeLowPower); got != ModeNormal {
		t.Fatalf("expected NORMAL got %s", got)
	}
}

func TestDecideModeHysteresisBand(t *testing.T) {
	// SOC in (30,40], balance in [-10,0]: no rule matches, current mode kept.
	for _, current := range []Mode{ModeNormal, ModeLowPower, ModeHibernation} {
		s := EnergyState{BatterySoC: 35, SolarGeneration: 45, PowerConsumption: 50}
		for i := 0; i < 10; i++ {
			if got := DecideMode(s, current); got != current {
				t.Fatalf("iteration %d: expected %s kept, got %s", i, current, got)
			}
		}
	}
}

func TestApplyModeNormalEnablesAll(t *testing.T) {
	r := NewRegistry()
	r.ApplyMode(ModeEmergency)
	r.ApplyMode(ModeNormal)
	for _, c := range r.Components() {
		if !c.Enabled {
			t.Errorf("%s disabled in NORMAL", c.Name)
		}
	}
}

func TestApplyModeLowPowerDisablesCamerasAndLow(t *testing.T) {
	r := NewRegistry()
	r.ApplyMode(ModeLowPower)
	for _, c := range r.Components() {
		switch {
		case c.Priority == PriorityLow:
			if c.Enabled {
				t.Errorf("LOW-priority %s enabled in LOW_POWER", c.Name)
			}
		case c.Name == ComponentCameras:
			if c.Enabled {
				t.Errorf("cameras enabled in LOW_POWER")
			}
		default:
			if !c.Enabled {
				t.Errorf("%s disabled in LOW_POWER", c.Name)
			}
		}
	}
}

func TestApplyModeHibernationKeepsEssential(t *testing.T) {
	r := NewRegistry()
	r.ApplyMode(ModeHibernation)
	for _, c := range r.Components() {
		want := c.Priority == PriorityCritical || c.Essential
		if c.Enabled != want {
			t.Errorf("%s: enabled=%v want %v", c.Name, c.Enabled, want)
		}
	}
}

func TestApplyModeEmergencyExactlyCritical(t *testing.T) {
	// regardless of prior state, EMERGENCY leaves exactly the critical set on
	r := NewRegistry()
	r.ApplyMode(ModeHibernation)
	r.ApplyMode(ModeEmergency)
	for _, c := range r.Components() {
		if c.Enabled != (c.Priority == PriorityCritical) {
			t.Errorf("%s: enabled=%v priority=%s", c.Name, c.Enabled, c.Priority)
		}
	}
}
