package power

import "testing"

func TestForecastNextSolRegression(t *testing.T) {
	want := (80.0*24.6*3600.0*0.5)/3600.0 - (40.0*24.6*3600.0)/3600.0
	if got := ForecastNextSol(); got != want {
		t.Fatalf("ForecastNextSol() = %v, want %v", got, want)
	}
}
