package power

// Sol forecast constants. The forecast is advisory: it is reported once per
// prediction tick and never feeds back into mode decisions or allocation.
const (
	avgSolarGenerationW = 80.0
	solDurationSeconds  = 24.6 * 3600.0
	daylightFraction    = 0.5
	avgConsumptionW     = 40.0
)

// ForecastNextSol estimates the net energy balance in watt-hours over the
// next sol from fixed average generation and consumption figures.
func ForecastNextSol() float64 {
	generation := avgSolarGenerationW * solDurationSeconds * daylightFraction / 3600.0
	consumption := avgConsumptionW * solDurationSeconds / 3600.0
	return generation - consumption
}
