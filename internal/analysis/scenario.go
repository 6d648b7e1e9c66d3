package analysis

import "math"

// Transition scenario assumptions over the ten-year strategic horizon. The
// index starts at 100 for the run year; regulators expect roughly 6% annual
// de-risking, while a portfolio weighed down by delayed action plans only
// manages about 1.5%.
const (
	scenarioHorizonYears  = 10
	scenarioBaselineIndex = 100.0
	regulatoryDecayRate   = 0.06
	portfolioDecayRate    = 0.015
)

// ScenarioPoint is one year on the transition sensitivity overlay. Gap is
// the divergence between the portfolio's business-as-usual pathway and the
// regulatory-aligned one, in index points.
type ScenarioPoint struct {
	Year            int     `json:"year"`
	Regulatory      float64 `json:"regulatory"`
	BusinessAsUsual float64 `json:"business_as_usual"`
	Gap             float64 `json:"gap"`
}

// TransitionScenario projects the regulatory-aligned and business-as-usual
// de-risking pathways from the given base year. Both are normalized indices,
// not loan-level emissions estimates.
func TransitionScenario(baseYear int) []ScenarioPoint {
	points := make([]ScenarioPoint, scenarioHorizonYears+1)
	for i := range points {
		reg := scenarioBaselineIndex * math.Pow(1-regulatoryDecayRate, float64(i))
		bau := scenarioBaselineIndex * math.Pow(1-portfolioDecayRate, float64(i))
		points[i] = ScenarioPoint{
			Year:            baseYear + i,
			Regulatory:      reg,
			BusinessAsUsual: bau,
			Gap:             bau - reg,
		}
	}
	return points
}
