// Package events defines the event types published on the internal bus.
package events

import "time"

// ModeChangeEvent is published when the engine switches operating modes.
// Modes are carried as their canonical labels so subscribers need no
// dependency on the engine types.
type ModeChangeEvent struct {
	From string
	To   string
	Time time.Time
}

// ForecastEvent is published once per prediction tick.
type ForecastEvent struct {
	PredictedWh float64
	SoC         float64
	Mode        string
	Time        time.Time
}
