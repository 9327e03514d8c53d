// Package power implements the rover power management engine: the operating
// mode state machine, the priority-based power allocator and the energy
// forecast. The Manager ties them together and is driven by periodic
// management and prediction ticks plus asynchronous telemetry updates.
package power
